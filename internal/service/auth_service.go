package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"zettel-todo/internal/domain"
	"zettel-todo/internal/queue"
	"zettel-todo/internal/repository"
)

// AuthService coordina signup, login y confirmación de verificación.
type AuthService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	codes   VerificationCodeStore
	jobs    queue.Producer
	codeTTL time.Duration
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrCodeInvalid        = errors.New("invalid or expired code")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidUsername    = errors.New("invalid username")
)

const defaultCodeTTL = 300 * time.Second

func NewAuthService(logger *zap.Logger, users repository.UserRepository, codes VerificationCodeStore, jobs queue.Producer, codeTTL time.Duration) *AuthService {
	if codeTTL <= 0 {
		codeTTL = defaultCodeTTL
	}
	return &AuthService{
		logger:  logger,
		users:   users,
		codes:   codes,
		jobs:    jobs,
		codeTTL: codeTTL,
	}
}

// Signup crea el usuario sin verificar, guarda el código en cache y
// encola el envío del correo. No emite token.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (domain.User, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" {
		return domain.User{}, ErrInvalidEmail
	}
	if username == "" {
		return domain.User{}, ErrInvalidUsername
	}

	// Chequeo temprano de duplicados: ningún código ni trabajo debe
	// generarse para una cuenta ya existente.
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return domain.User{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsVerified:   false,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// La constraint única de la base es la fuente de verdad ante
		// dos signups concurrentes con el mismo email.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return domain.User{}, err
	}

	// El código debe estar en cache antes de encolar el trabajo: un
	// verify que corra contra el envío del correo ya lo encuentra.
	if err := s.codes.Put(ctx, email, code, s.codeTTL); err != nil {
		return domain.User{}, err
	}
	if err := s.jobs.Enqueue(ctx, queue.VerificationJob{Email: email, Code: code}); err != nil {
		return domain.User{}, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return user, nil
}

// Login autentica credenciales y exige cuenta verificada.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Mismo error que password incorrecto para no permitir
			// enumeración de cuentas.
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if !CheckPassword(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return domain.User{}, ErrNotVerified
	}
	return user, nil
}

// ConfirmVerification compara el código contra la cache y marca el
// usuario como verificado. El código es de un solo uso: se borra de la
// cache tras una confirmación exitosa.
func (s *AuthService) ConfirmVerification(ctx context.Context, email, code string) (domain.User, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return domain.User{}, ErrCodeInvalid
	}

	stored, err := s.codes.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			// Mismo error que código incorrecto: no se distingue
			// "nunca solicitado" de "mal adivinado".
			return domain.User{}, ErrCodeInvalid
		}
		// Una cache caída no equivale a código ausente.
		return domain.User{}, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return domain.User{}, ErrCodeInvalid
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrCodeInvalid
		}
		return domain.User{}, err
	}

	if err := s.users.SetVerified(ctx, user.ID); err != nil {
		return domain.User{}, err
	}
	if err := s.codes.Delete(ctx, email); err != nil {
		s.logger.Warn("delete verification code failed", zap.Error(err), zap.String("email", email))
	}

	user.IsVerified = true
	s.logger.Info("user verified", zap.String("user_id", user.ID))
	return user, nil
}

// generateVerificationCode devuelve un código numérico de 4 dígitos
// uniformemente aleatorio.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
