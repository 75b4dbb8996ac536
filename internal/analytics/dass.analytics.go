package analytics

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryDepression Category = "depression"
	CategoryAnxiety    Category = "anxiety"
	CategoryStress     Category = "stress"
)

type Severity string

const (
	SeverityNormal          Severity = "Normal"
	SeverityMild            Severity = "Mild"
	SeverityModerate        Severity = "Moderate"
	SeveritySevere          Severity = "Severe"
	SeverityExtremelySevere Severity = "Extremely Severe"
)

const (
	QuestionCount = 21
	Unanswered    = -1
	MaxAnswer     = 3

	// DASS-21 sums are doubled to land on the 42-item scale.
	scoreMultiplier = 2

	AnonymousName = "Anonymous"
)

type QuestionnaireItem struct {
	Number   int      `json:"number"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

var QuestionnaireItems = [QuestionCount]QuestionnaireItem{
	{1, "I found it hard to wind down", CategoryStress},
	{2, "I was aware of dryness of my mouth", CategoryAnxiety},
	{3, "I couldn't seem to experience any positive feeling at all", CategoryDepression},
	{4, "I experienced breathing difficulty", CategoryAnxiety},
	{5, "I found it difficult to work up the initiative to do things", CategoryDepression},
	{6, "I tended to over-react to situations", CategoryStress},
	{7, "I experienced trembling", CategoryAnxiety},
	{8, "I felt that I was using a lot of nervous energy", CategoryStress},
	{9, "I was worried about situations in which I might panic", CategoryAnxiety},
	{10, "I felt that I had nothing to look forward to", CategoryDepression},
	{11, "I found myself getting agitated", CategoryStress},
	{12, "I found it difficult to relax", CategoryStress},
	{13, "I felt down-hearted and blue", CategoryDepression},
	{14, "I was intolerant of anything that kept me from getting on with what I was doing", CategoryStress},
	{15, "I felt I was close to panic", CategoryAnxiety},
	{16, "I was unable to become enthusiastic about anything", CategoryDepression},
	{17, "I felt I wasn't worth much as a person", CategoryDepression},
	{18, "I felt that I was rather touchy", CategoryStress},
	{19, "I was aware of the action of my heart in the absence of physical exertion", CategoryAnxiety},
	{20, "I felt scared without any good reason", CategoryAnxiety},
	{21, "I felt that life was meaningless", CategoryDepression},
}

// Inclusive upper bounds for Normal, Mild, Moderate and Severe. Anything
// above the last bound is Extremely Severe.
var severityBands = map[Category][4]int{
	CategoryDepression: {9, 13, 20, 27},
	CategoryAnxiety:    {7, 9, 14, 19},
	CategoryStress:     {14, 18, 25, 33},
}

var severityLadder = [5]Severity{
	SeverityNormal,
	SeverityMild,
	SeverityModerate,
	SeveritySevere,
	SeverityExtremelySevere,
}

type CategoryScore struct {
	Category Category `json:"category"`
	RawScore int      `json:"rawScore"`
	Severity Severity `json:"severity"`
}

type QuestionnaireResult struct {
	Depression CategoryScore `json:"depression"`
	Anxiety    CategoryScore `json:"anxiety"`
	Stress     CategoryScore `json:"stress"`
}

// CheckinRecord is the immutable result record written to the checkin sink.
type CheckinRecord struct {
	UID                string    `json:"uid"`
	FullName           string    `json:"fullName"`
	DepressionScore    int       `json:"depressionScore"`
	DepressionSeverity Severity  `json:"depressionSeverity"`
	AnxietyScore       int       `json:"anxietyScore"`
	AnxietySeverity    Severity  `json:"anxietySeverity"`
	StressScore        int       `json:"stressScore"`
	StressSeverity     Severity  `json:"stressSeverity"`
	Timestamp          time.Time `json:"timestamp"`
}

// ClassifySeverity maps a doubled score onto the category's band. An unknown
// category yields an empty severity.
func ClassifySeverity(category Category, score int) Severity {
	bands, ok := severityBands[category]
	if !ok {
		return ""
	}
	for i, upper := range bands {
		if score <= upper {
			return severityLadder[i]
		}
	}
	return SeverityExtremelySevere
}

// ScoreQuestionnaire scores a full DASS-21 administration. answers[i] is the
// response to QuestionnaireItems[i]. Every answer must be present and in
// 0..3 before anything is summed.
func ScoreQuestionnaire(answers []int) (QuestionnaireResult, error) {
	if len(answers) != QuestionCount {
		return QuestionnaireResult{}, fmt.Errorf(
			"%w: expected %d answers, got %d",
			ErrIncompleteInput,
			QuestionCount,
			len(answers),
		)
	}

	var unanswered []int
	for i, answer := range answers {
		if answer == Unanswered {
			unanswered = append(unanswered, i+1)
			continue
		}
		if answer < 0 || answer > MaxAnswer {
			return QuestionnaireResult{}, fmt.Errorf(
				"%w: question %d has answer %d",
				ErrInvalidAnswer,
				i+1,
				answer,
			)
		}
	}
	if len(unanswered) > 0 {
		return QuestionnaireResult{}, fmt.Errorf(
			"%w: unanswered questions %v",
			ErrIncompleteInput,
			unanswered,
		)
	}

	sums := make(map[Category]int, len(severityBands))
	for i, answer := range answers {
		sums[QuestionnaireItems[i].Category] += answer
	}

	return QuestionnaireResult{
		Depression: newCategoryScore(CategoryDepression, sums[CategoryDepression]),
		Anxiety:    newCategoryScore(CategoryAnxiety, sums[CategoryAnxiety]),
		Stress:     newCategoryScore(CategoryStress, sums[CategoryStress]),
	}, nil
}

func newCategoryScore(category Category, sum int) CategoryScore {
	score := sum * scoreMultiplier
	return CategoryScore{
		Category: category,
		RawScore: score,
		Severity: ClassifySeverity(category, score),
	}
}

func (r QuestionnaireResult) Scores() []CategoryScore {
	return []CategoryScore{r.Depression, r.Anxiety, r.Stress}
}

func NewCheckinRecord(
	uid string,
	fullName string,
	result QuestionnaireResult,
	timestamp time.Time,
) CheckinRecord {
	if fullName == "" {
		fullName = AnonymousName
	}

	return CheckinRecord{
		UID:                uid,
		FullName:           fullName,
		DepressionScore:    result.Depression.RawScore,
		DepressionSeverity: result.Depression.Severity,
		AnxietyScore:       result.Anxiety.RawScore,
		AnxietySeverity:    result.Anxiety.Severity,
		StressScore:        result.Stress.RawScore,
		StressSeverity:     result.Stress.Severity,
		Timestamp:          timestamp,
	}
}
