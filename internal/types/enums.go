package types

// Question types.
const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      = "TRUE_FALSE"
	QuestionTypeShortAnswer    = "SHORT_ANSWER"
	QuestionTypeEssay          = "ESSAY"
)

// Difficulty levels, ordered easiest to hardest. ProficiencyLevel on User
// uses the same scale.
const (
	DifficultyVeryEasy = "VERY_EASY"
	DifficultyEasy     = "EASY"
	DifficultyMedium   = "MEDIUM"
	DifficultyHard     = "HARD"
	DifficultyVeryHard = "VERY_HARD"
)

// User roles.
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

var validQuestionTypes = map[string]struct{}{
	QuestionTypeMultipleChoice: {},
	QuestionTypeTrueFalse:      {},
	QuestionTypeShortAnswer:    {},
	QuestionTypeEssay:          {},
}

var validDifficulties = map[string]struct{}{
	DifficultyVeryEasy: {},
	DifficultyEasy:     {},
	DifficultyMedium:   {},
	DifficultyHard:     {},
	DifficultyVeryHard: {},
}

var validRoles = map[string]struct{}{
	RoleStudent: {},
	RoleTeacher: {},
	RoleAdmin:   {},
}

func IsValidQuestionType(v string) bool {
	_, ok := validQuestionTypes[v]
	return ok
}

func IsValidDifficulty(v string) bool {
	_, ok := validDifficulties[v]
	return ok
}

func IsValidRole(v string) bool {
	_, ok := validRoles[v]
	return ok
}
