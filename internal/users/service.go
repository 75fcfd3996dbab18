package users

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/people-finder/internal/config"
	"github.com/jonathan/people-finder/internal/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Service provides validated user operations over a Store.
type Service struct {
	store     Store
	passwords *config.PasswordConfig
	now       func() time.Time
}

// NewService creates a user service.
func NewService(store Store, passwords *config.PasswordConfig) *Service {
	return &Service{
		store:     store,
		passwords: passwords,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// ParseID parses a user id taken from a request path.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a valid UUID"}
	}
	return id, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.Get(ctx, id)
}

// Create validates req, hashes the password and stores a new user.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user, err := s.store.Create(ctx, Record{
		User: User{
			ID:        uuid.New(),
			Name:      req.Name,
			Email:     req.Email,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	logger.C(ctx).Info().Str("component", "users").Str("user_id", user.ID.String()).Msg("user created")
	return user, nil
}

// Update applies the set fields of req to the user with id.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*User, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if req.Avatar != nil {
		avatar := strings.TrimSpace(*req.Avatar)
		req.Avatar = &avatar
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	return s.store.Update(ctx, id, Patch{
		Name:      req.Name,
		Email:     req.Email,
		Avatar:    req.Avatar,
		UpdatedAt: s.now(),
	})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.C(ctx).Info().Str("component", "users").Str("user_id", id.String()).Msg("user deleted")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: message(fe)}
	}
	return fmt.Errorf("failed to validate request: %w", err)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
