// internal/repositories/user_repository.go
package repositories

import (
	"context"
	"fmt"

	"notehub/internal/database"
	"notehub/internal/models"

	"go.uber.org/zap"
)

// userRepository implements UserRepository
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetByID retrieves a user with affiliation fields. Returns nil when no
// such user exists.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT
			id, email, username, display_name, bio, avatar_url,
			institution_id, program_id, is_active, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user models.User
	err := r.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Username, &user.DisplayName, &user.Bio, &user.AvatarURL,
		&user.InstitutionID, &user.ProgramID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}
