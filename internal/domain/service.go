package domain

import "context"

// TextGenerator is the port for the external generative-AI service. The
// adapter owns the network call; everything on this side of the port is pure
// computation on the returned text.
type TextGenerator interface {
	// GenerateText sends a rendered prompt and returns the model's raw,
	// untrusted reply.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// QuizRepository defines the interface for quiz persistence. Quizzes handed
// to SaveQuiz have already passed validation and need no further structural
// checking.
type QuizRepository interface {
	// SaveQuiz persists an accepted quiz and assigns its ID
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// GetQuizByID retrieves a quiz by its ID, nil when absent
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// GetQuizzesByUser returns all quizzes owned by a user
	GetQuizzesByUser(ctx context.Context, userID string) ([]*Quiz, error)

	// UpdateQuiz updates an existing quiz
	UpdateQuiz(ctx context.Context, quiz *Quiz) error

	// DeleteQuiz soft-deletes a quiz
	DeleteQuiz(ctx context.Context, id string) error
}

// User represents an authenticated account. Quizzes reference their owner
// by user ID.
type User struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// GetUserByEmail retrieves a user by email, nil when absent
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID retrieves a user by ID, nil when absent
	GetUserByID(ctx context.Context, id string) (*User, error)

	// UpsertUser creates the user or refreshes profile fields on conflict
	UpsertUser(ctx context.Context, user *User) error
}
