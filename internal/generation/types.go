package generation

// Profile describes the learner a roadmap is generated for.
type Profile struct {
	Age              int    `json:"age,omitempty"`
	CurrentEducation string `json:"current_education"`
	CurrentKnowledge string `json:"current_knowledge"`
}

type RoadmapRequest struct {
	CourseTitle string  `json:"course_title"`
	Profile     Profile `json:"profile"`
}

type topicRequest struct {
	Topic string `json:"topic"`
}

// Roadmap is the decoded, validated roadmap returned by the service. Modules
// are ordered by their module_N key and Topics by their sub_module_N key.
type Roadmap struct {
	CourseTitle string
	Description string
	Duration    string
	Level       string
	Modules     []Module
}

type Module struct {
	Title       string
	Description string
	Topics      []string
}

type Video struct {
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type Content struct {
	Title           string
	Description     string
	Details         string
	Level           string
	EstimatedTime   string
	Examples        []string
	RelatedConcepts []string
	OtherResources  []string
	YoutubeLinks    []Video
}

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	Title       string
	Description string
	Questions   []Question
}

// wire shapes

type rawSubModule struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type rawContent struct {
	Content struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		Details         string   `json:"details"`
		Level           string   `json:"level"`
		EstimatedTime   string   `json:"estimated_time"`
		Examples        []string `json:"examples"`
		RelatedConcepts []string `json:"related_concepts"`
	} `json:"content"`
	OtherResources []string `json:"other_resources"`
	YoutubeLinks   []Video  `json:"youtube_links"`
}

type rawQuiz struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}
