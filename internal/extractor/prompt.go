package extractor

import (
	"fmt"
	"time"

	"hackathon-importer/internal/model"
)

const (
	// readmeExcerptRunes bounds how much README text goes into the prompt.
	readmeExcerptRunes = 1500

	temperature     = 0.1
	maxOutputTokens = 1024
)

const systemPrompt = "You are an expert at analyzing hackathon projects and extracting structured data. " +
	"Return valid JSON only, with no commentary."

const promptTemplate = `Analyze this GitHub repository and its README to extract hackathon project information.

Repository Name: %s
Repository Description: %s
Repository URL: %s
Created: %s

README Content:
%s

Return a single JSON object with these keys:
{
  "is_hackathon": true,
  "title": "Hackathon or event name",
  "project_name": "Name of the project built",
  "year": 2024,
  "description": "Brief project description",
  "location": "City, venue or Online",
  "participants": 100,
  "prize": "Prize won",
  "technologies": ["React", "Node.js"],
  "position": "1st Place, Finalist, Winner, ...",
  "link_url": "Demo or live project URL"
}

Only fill fields with clear evidence in the repository; set the others to null.
If this is not a hackathon project, return exactly {"is_hackathon": false}.`

func buildPrompt(repo model.Repository, readme string) string {
	return fmt.Sprintf(promptTemplate,
		repo.Name,
		repo.DescriptionOr("No description"),
		repo.URL,
		repo.RepoCreatedAt.UTC().Format(time.RFC3339),
		truncateRunes(readme, readmeExcerptRunes),
	)
}
