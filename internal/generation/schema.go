package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// keyPattern matches module_1..module_10 (or sub_module_1..sub_module_10).
const keyPattern = `^%s_([1-9]|10)$`

const roadmapSchemaTemplate = `{
  "type": "object",
  "required": ["course_title", "modules"],
  "properties": {
    "course_title": {"type": "string"},
    "description": {"type": "string"},
    "duration": {"type": "string"},
    "level": {"type": "string"},
    "modules": {
      "type": "object",
      "minProperties": 1,
      "maxProperties": %d,
      "propertyNames": {"pattern": %q},
      "additionalProperties": {
        "type": "object",
        "required": ["module_title"],
        "maxProperties": %d,
        "properties": {
          "module_title": {"type": "string", "minLength": 1},
          "description": {"type": "string"}
        },
        "patternProperties": {
          %q: {
            "type": "object",
            "required": ["title"],
            "properties": {
              "title": {"type": "string", "minLength": 1},
              "description": {"type": "string"}
            }
          }
        },
        "additionalProperties": false
      }
    }
  }
}`

const contentSchema = `{
  "type": "object",
  "required": ["content"],
  "properties": {
    "content": {
      "type": "object",
      "required": ["title", "description"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "details": {"type": "string"},
        "level": {"type": "string"},
        "estimated_time": {"type": "string"},
        "examples": {"type": "array", "items": {"type": "string"}},
        "related_concepts": {"type": "array", "items": {"type": "string"}}
      }
    },
    "other_resources": {"type": "array", "items": {"type": "string"}},
    "youtube_links": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "channel": {"type": "string"},
          "description": {"type": "string"},
          "url": {"type": "string"}
        }
      }
    }
  }
}`

const quizSchema = `{
  "type": "object",
  "required": ["title", "questions"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["question", "options", "correct_answer"],
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "options": {"type": "array", "minItems": 2, "items": {"type": "string"}},
          "correct_answer": {"type": "string", "minLength": 1},
          "explanation": {"type": "string"}
        }
      }
    }
  }
}`

type schemas struct {
	roadmap *jsonschema.Schema
	content *jsonschema.Schema
	quiz    *jsonschema.Schema
}

func compileSchemas(maxModules, maxSubModules int) (*schemas, error) {
	// module_title and description sit beside the sub_module_N keys.
	roadmapDoc := fmt.Sprintf(roadmapSchemaTemplate,
		maxModules,
		fmt.Sprintf(keyPattern, "module"),
		maxSubModules+2,
		fmt.Sprintf(keyPattern, "sub_module"),
	)

	roadmap, err := compileSchema("roadmap", roadmapDoc)
	if err != nil {
		return nil, err
	}
	content, err := compileSchema("content", contentSchema)
	if err != nil {
		return nil, err
	}
	quiz, err := compileSchema("quiz", quizSchema)
	if err != nil {
		return nil, err
	}
	return &schemas{roadmap: roadmap, content: content, quiz: quiz}, nil
}

func compileSchema(name, doc string) (*jsonschema.Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", name, err)
	}
	return c.Compile(url)
}

func validate(kind string, schema *jsonschema.Schema, raw []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return malformed(kind, "invalid JSON: %v", err)
	}
	if err := schema.Validate(instance); err != nil {
		return malformed(kind, "schema validation failed: %v", err)
	}
	return nil
}

// numberedKeys returns the keys of m that match prefix_N, ordered by N.
func numberedKeys(m map[string]json.RawMessage, prefix string) []string {
	type numbered struct {
		key string
		n   int
	}
	var keys []numbered
	for k := range m {
		suffix, ok := strings.CutPrefix(k, prefix+"_")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		keys = append(keys, numbered{key: k, n: n})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].n < keys[j].n })

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.key
	}
	return out
}

func decodeRoadmap(raw []byte, maxSubModules int) (*Roadmap, error) {
	var top struct {
		CourseTitle string                     `json:"course_title"`
		Description string                     `json:"description"`
		Duration    string                     `json:"duration"`
		Level       string                     `json:"level"`
		Modules     map[string]json.RawMessage `json:"modules"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, malformed(KindRoadmap, "decode roadmap: %v", err)
	}

	level, ok := NormalizeLevel(top.Level)
	if !ok {
		return nil, malformed(KindRoadmap, "unknown level %q", top.Level)
	}

	out := &Roadmap{
		CourseTitle: strings.TrimSpace(top.CourseTitle),
		Description: top.Description,
		Duration:    top.Duration,
		Level:       level,
	}

	for _, key := range numberedKeys(top.Modules, "module") {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(top.Modules[key], &fields); err != nil {
			return nil, malformed(KindRoadmap, "decode %s: %v", key, err)
		}

		var mod Module
		if err := json.Unmarshal(fields["module_title"], &mod.Title); err != nil {
			return nil, malformed(KindRoadmap, "decode %s.module_title: %v", key, err)
		}
		mod.Title = strings.TrimSpace(mod.Title)
		if desc, ok := fields["description"]; ok {
			if err := json.Unmarshal(desc, &mod.Description); err != nil {
				return nil, malformed(KindRoadmap, "decode %s.description: %v", key, err)
			}
		}

		subKeys := numberedKeys(fields, "sub_module")
		if len(subKeys) > maxSubModules {
			return nil, malformed(KindRoadmap, "%s has %d sub-modules, at most %d allowed", key, len(subKeys), maxSubModules)
		}
		seen := make(map[string]bool)
		for _, subKey := range subKeys {
			var sub rawSubModule
			if err := json.Unmarshal(fields[subKey], &sub); err != nil {
				return nil, malformed(KindRoadmap, "decode %s.%s: %v", key, subKey, err)
			}
			topic := strings.TrimSpace(sub.Title)
			if topic == "" {
				return nil, malformed(KindRoadmap, "%s.%s has a blank title", key, subKey)
			}
			if seen[topic] {
				return nil, malformed(KindRoadmap, "%s repeats topic %q", key, topic)
			}
			seen[topic] = true
			mod.Topics = append(mod.Topics, topic)
		}
		if mod.Title == "" {
			return nil, malformed(KindRoadmap, "%s has a blank title", key)
		}
		out.Modules = append(out.Modules, mod)
	}

	return out, nil
}

// NormalizeLevel maps a free-form level label onto the roadmap levels,
// ignoring case. An empty label means the roadmap suits everyone.
func NormalizeLevel(level string) (string, bool) {
	level = strings.TrimSpace(level)
	if level == "" {
		return "All Levels", true
	}
	for _, known := range []string{"Beginner", "Intermediate", "Advanced", "All Levels"} {
		if strings.EqualFold(level, known) {
			return known, true
		}
	}
	return "", false
}

func decodeContent(raw []byte) (*Content, error) {
	var in rawContent
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, malformed(KindContent, "decode content: %v", err)
	}
	return &Content{
		Title:           in.Content.Title,
		Description:     in.Content.Description,
		Details:         in.Content.Details,
		Level:           in.Content.Level,
		EstimatedTime:   in.Content.EstimatedTime,
		Examples:        in.Content.Examples,
		RelatedConcepts: in.Content.RelatedConcepts,
		OtherResources:  in.OtherResources,
		YoutubeLinks:    in.YoutubeLinks,
	}, nil
}

func decodeQuiz(raw []byte) (*Quiz, error) {
	var in rawQuiz
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, malformed(KindQuiz, "decode quiz: %v", err)
	}
	for i, q := range in.Questions {
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return nil, malformed(KindQuiz, "question %d: correct answer is not one of the options", i+1)
		}
	}
	return &Quiz{
		Title:       in.Title,
		Description: in.Description,
		Questions:   in.Questions,
	}, nil
}
