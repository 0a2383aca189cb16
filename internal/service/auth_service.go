package service

import (
	"context"
	"errors"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrValidationFailed     = errors.New("validation failed")
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email          string
	Username       string
	Password       string
	FullName       string
	Goal           domain.Goal
	ActivityLevel  domain.ActivityLevel
	TargetWeight   *float64
	TargetCalories *int
}

// ProfileUpdate is a partial patch of the user profile. Nil fields are
// left untouched.
type ProfileUpdate struct {
	Email          *string
	Username       *string
	FullName       *string
	Goal           *domain.Goal
	ActivityLevel  *domain.ActivityLevel
	TargetWeight   *float64
	TargetCalories *int
}

// AuthService handles registration, login and profile lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetProfile(ctx context.Context, userID uint) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uint, patch ProfileUpdate) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

type authService struct {
	userRepo      repository.UserRepository
	hasher        PasswordHasher
	jwtSecret     string
	jwtExpiration time.Duration
	log           *zap.SugaredLogger
}

// NewAuthService creates a new AuthService. The hasher is injected so
// the hashing primitive stays swappable and testable.
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, jwtSecret string, jwtExpiration time.Duration, log *zap.SugaredLogger) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		hasher:        hasher,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		log:           log,
	}
}

// Register creates a new account. Duplicate email is rejected before
// duplicate username, matching the order clients rely on.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Username == "" || input.Password == "" {
		return nil, ErrValidationFailed
	}

	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, ErrHashingFailed
	}

	goal := input.Goal
	if goal == "" {
		goal = domain.GoalMaintain
	}
	activity := input.ActivityLevel
	if activity == "" {
		activity = domain.ActivityModerate
	}

	user := &domain.User{
		Email:          input.Email,
		Username:       input.Username,
		HashedPassword: hashed,
		FullName:       input.FullName,
		IsActive:       true,
		Goal:           goal,
		ActivityLevel:  activity,
		TargetWeight:   input.TargetWeight,
		TargetCalories: input.TargetCalories,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// Race between the exists-check and the insert; the unique
		// indexes are the last line of defense.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	user.ID = userID

	s.log.Infow("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates by email and returns a signed token. A missing
// user and a wrong password surface the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.log.Infow("login rejected", "email", email)
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, user, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies only the fields present in the patch.
func (s *authService) UpdateProfile(ctx context.Context, userID uint, patch ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Goal != nil {
		user.Goal = *patch.Goal
	}
	if patch.ActivityLevel != nil {
		user.ActivityLevel = *patch.ActivityLevel
	}
	if patch.TargetWeight != nil {
		user.TargetWeight = patch.TargetWeight
	}
	if patch.TargetCalories != nil {
		user.TargetCalories = patch.TargetCalories
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount hard-deletes the user row. Owned records are a
// persistence-layer concern; nothing here assumes a cascade.
func (s *authService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.log.Infow("user deleted", "user_id", userID)
	return nil
}

// --- JWT Helper ---

type jwtClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fittrack",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
