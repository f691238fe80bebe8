package models

// Case is one mystery scenario. It owns its clues and suspects: deleting a
// case removes them along with cached analyses and interview transcripts.
type Case struct {
	ID          string `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Summary     string `db:"summary" json:"summary"`
	Difficulty  string `db:"difficulty" json:"difficulty"`
	Solved      bool   `db:"solved" json:"solved"`
	Archived    bool   `db:"archived" json:"archived"`
	Location    string `db:"location" json:"location"`
	DateTime    string `db:"date_time" json:"dateTime"`
	ImageURL    string `db:"image_url" json:"imageUrl"`
	Generated   bool   `db:"generated" json:"isLLMGenerated"`
	Solution    string `db:"solution" json:"solution,omitempty"`

	Clues    []Clue    `db:"-" json:"clues,omitempty"`
	Suspects []Suspect `db:"-" json:"suspects,omitempty"`
}

// Clue is a discoverable evidence item attached to a case.
type Clue struct {
	ID          string `db:"id" json:"id"`
	CaseID      string `db:"case_id" json:"caseId"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Location    string `db:"location" json:"location"`
	Type        string `db:"type" json:"type"`
	Discovered  bool   `db:"discovered" json:"discovered"`
	Examined    bool   `db:"examined" json:"examined"`
	Relevance   string `db:"relevance" json:"relevance"`
	Emoji       string `db:"emoji" json:"emoji"`
	ImageURL    string `db:"image_url" json:"imageUrl,omitempty"`
}

// Suspect is a candidate culprit attached to a case. Exactly one suspect per
// case should carry the guilty flag.
type Suspect struct {
	ID          string `db:"id" json:"id"`
	CaseID      string `db:"case_id" json:"caseId"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Background  string `db:"background" json:"background"`
	Motive      string `db:"motive" json:"motive"`
	Alibi       string `db:"alibi" json:"alibi"`
	Guilty      bool   `db:"guilty" json:"isGuilty"`
	Interviewed bool   `db:"interviewed" json:"interviewed"`
	Emoji       string `db:"emoji" json:"emoji"`
	ImageURL    string `db:"image_url" json:"imageUrl,omitempty"`
}

// GeneratedCase bundles a freshly generated case with its clues, suspects and
// the model-authored solution narrative.
type GeneratedCase struct {
	Case     Case      `json:"case"`
	Clues    []Clue    `json:"clues"`
	Suspects []Suspect `json:"suspects"`
	Solution string    `json:"solution"`
}

// CaseParams are the knobs for case generation.
type CaseParams struct {
	Difficulty     string `json:"difficulty"`
	Theme          string `json:"theme"`
	Location       string `json:"location"`
	Era            string `json:"era"`
	Language       string `json:"language"`
	CustomScenario string `json:"customScenario"`
}

// ClueConnection links a clue to a suspect it implicates.
type ClueConnection struct {
	SuspectID      string `json:"suspectId"`
	ConnectionType string `json:"connectionType"`
	Description    string `json:"description"`
}

// ClueAnalysis is the cached AI reading of a clue. At most one per clue.
type ClueAnalysis struct {
	Summary     string           `json:"summary"`
	Connections []ClueConnection `json:"connections"`
	NextSteps   []string         `json:"nextSteps"`
}

// SuspectConnection links a suspect to a clue that involves them.
type SuspectConnection struct {
	ClueID         string `json:"clueId"`
	ConnectionType string `json:"connectionType"`
	Description    string `json:"description"`
}

// SuspectAnalysis is the AI reading of a suspect.
type SuspectAnalysis struct {
	SuspectID          string              `json:"suspectId"`
	Trustworthiness    int                 `json:"trustworthiness"`
	Inconsistencies    []string            `json:"inconsistencies"`
	Connections        []SuspectConnection `json:"connections"`
	SuggestedQuestions []string            `json:"suggestedQuestions"`
}

// InterviewTurn is one question and answer in a suspect interview transcript.
type InterviewTurn struct {
	ID        int64  `db:"id" json:"id"`
	SuspectID string `db:"suspect_id" json:"suspectId"`
	CaseID    string `db:"case_id" json:"caseId"`
	Question  string `db:"question" json:"question"`
	Answer    string `db:"answer" json:"answer"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// CaseSolution is the transient verdict for a submitted accusation. It is not
// persisted: correctness is recomputed from ground truth on every submission.
type CaseSolution struct {
	Solved      bool     `json:"solved"`
	CulpritID   string   `json:"culpritId"`
	Reasoning   string   `json:"reasoning"`
	EvidenceIDs []string `json:"evidenceIds"`
	Narrative   string   `json:"narrative"`
}

// Image is a stored generated image keyed by "<entity-type>/<entity-id>".
type Image struct {
	Key         string `db:"key" json:"key"`
	Data        []byte `db:"data" json:"-"`
	ContentType string `db:"content_type" json:"contentType"`
}
