package discovery

import (
	"regexp"
	"strings"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// ClassifyURL infers the resource type from URL substrings. Unrecognized
// URLs default to article, the most common shape of a search hit.
func ClassifyURL(rawURL string) types.ResourceType {
	url := strings.ToLower(rawURL)

	switch {
	case strings.Contains(url, "youtube.com"),
		strings.Contains(url, "vimeo.com"),
		strings.Contains(url, "coursera.org/lecture"):
		return types.ResourceVideo
	case strings.Contains(url, "github.com"),
		strings.Contains(url, "codepen.io"),
		strings.Contains(url, "jsfiddle.net"),
		strings.Contains(url, "replit.com"):
		return types.ResourceInteractive
	case strings.Contains(url, "coursera.org/learn"),
		strings.Contains(url, "udemy.com/course"),
		strings.Contains(url, "edx.org/course"),
		strings.Contains(url, "khanacademy.org"):
		return types.ResourceCourse
	case strings.Contains(url, "docs."),
		strings.Contains(url, ".io/docs"),
		strings.Contains(url, ".org/docs"),
		strings.Contains(url, "documentation"):
		return types.ResourceDocumentation
	case strings.Contains(url, ".edu"),
		strings.Contains(url, "arxiv.org"),
		strings.Contains(url, "researchgate.net"),
		strings.Contains(url, "academia.edu"):
		return types.ResourceAcademic
	case strings.Contains(url, "/tutorial"),
		strings.Contains(url, "tutorialspoint.com"),
		strings.Contains(url, "w3schools.com"):
		return types.ResourceTutorial
	default:
		return types.ResourceArticle
	}
}

var durationNumber = regexp.MustCompile(`(\d+)\s*(hours?|hrs?|minutes?|mins?)`)

// EstimateTimeMinutes estimates consumption time for an item. Video
// descriptions are scanned for an explicit duration; article snippets get a
// reading-speed estimate; other types use fixed per-type defaults.
func EstimateTimeMinutes(rt types.ResourceType, description string) int {
	switch rt {
	case types.ResourceVideo:
		if m := durationNumber.FindStringSubmatch(strings.ToLower(description)); m != nil {
			n := 0
			for _, ch := range m[1] {
				n = n*10 + int(ch-'0')
			}
			if strings.HasPrefix(m[2], "h") {
				return n * 60
			}
			return n
		}
		return 15
	case types.ResourceArticle:
		// Snippets are truncated, so scale the word count up before
		// dividing by a ~200 wpm reading speed.
		words := len(strings.Fields(description))
		est := words * 3 / 200
		if est < 5 {
			est = 5
		}
		if est > 60 {
			est = 60
		}
		return est
	case types.ResourceCourse:
		return 120
	case types.ResourceDocumentation:
		return 30
	case types.ResourceInteractive:
		return 45
	case types.ResourceAcademic:
		return 60
	case types.ResourceTutorial:
		return 40
	default:
		return 20
	}
}

var beginnerKeywords = []string{
	"beginner", "introduction", "basic", "start", "fundamental",
	"101", "starter", "novice", "first steps",
}

var advancedKeywords = []string{
	"advanced", "expert", "complex", "deep dive", "mastering",
	"professional", "comprehensive", "in-depth",
}

// EstimateDifficulty classifies difficulty from title and description
// keywords. Ties and keyword-free text land on intermediate.
func EstimateDifficulty(title, description string) types.Difficulty {
	text := strings.ToLower(title + " " + description)

	beginnerScore := 0
	for _, word := range beginnerKeywords {
		if strings.Contains(text, word) {
			beginnerScore++
		}
	}
	advancedScore := 0
	for _, word := range advancedKeywords {
		if strings.Contains(text, word) {
			advancedScore++
		}
	}

	switch {
	case advancedScore > beginnerScore:
		return types.DifficultyAdvanced
	case beginnerScore > 0:
		return types.DifficultyBeginner
	default:
		return types.DifficultyIntermediate
	}
}

// LearningStylesFor tags the learning styles a resource type serves.
func LearningStylesFor(rt types.ResourceType) []string {
	switch rt {
	case types.ResourceVideo:
		return []string{"visual", "auditory"}
	case types.ResourceArticle, types.ResourceDocumentation:
		return []string{"reading"}
	case types.ResourceInteractive:
		return []string{"kinesthetic", "practical"}
	case types.ResourceCourse:
		return []string{"visual", "reading", "structured"}
	case types.ResourceAcademic:
		return []string{"reading", "analytical"}
	case types.ResourceTutorial:
		return []string{"reading", "practical"}
	default:
		return nil
	}
}
