package auth

import (
	"context"
	"time"

	"CampusEventPortal/internal/apperr"
	"CampusEventPortal/internal/authz"

	"github.com/google/uuid"
)

// TokenDuration is the lifetime of an access token.
const TokenDuration = time.Hour

// UserStore is the persistence surface the service needs. *UserRepository is
// the production implementation; tests substitute an in-memory one.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, error)
	ListByDepartment(ctx context.Context, department string) ([]User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Login verifies credentials and issues a bearer token carrying identity,
// role and department claims.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", apperr.Validation("email and password are required")
	}
	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive || !CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", apperr.Unauthorized("incorrect email or password")
	}
	return GenerateJWT(user, TokenDuration)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	if req.NewPassword == "" {
		return apperr.Validation("new password is required")
	}
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}
	if !CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperr.Validation("incorrect old password")
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.store.Update(ctx, user)
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.store.List(ctx, offset, limit)
}

// ListDepartmentUsers returns the users of the caller's own department.
// Intended for department heads.
func (s *UserService) ListDepartmentUsers(ctx context.Context, actor authz.Actor) ([]User, error) {
	if actor.Department == "" {
		return nil, apperr.Validation("head has no department assigned")
	}
	return s.store.ListByDepartment(ctx, actor.Department)
}

// CreateUser registers a new identity. Admin-only, enforced at the route
// layer. Duplicate username or email is a conflict.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}
	role, ok := authz.ParseRole(req.Role)
	if !ok {
		return nil, apperr.Validation("role must be one of admin, head, employee, student")
	}

	if existing, err := s.store.FindByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Conflict("username already registered")
	}
	if existing, err := s.store.FindByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         role,
		Department:   req.Department,
		IsActive:     true,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies the admin update. Role is never touched; a role change
// would invalidate every snapshot comparison downstream.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Department != "" {
		user.Department = req.Department
	}
	if req.Password != "" {
		hash, err := HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}
	return s.store.Delete(ctx, id)
}
