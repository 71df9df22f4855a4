package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
	"github.com/jhoicas/shop-admin-api/pkg/jwt"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret          string
	ExpMinutes      int // sesión
	ResetExpMinutes int // reset de contraseña
	Issuer          string
}

// Mailer puerto de salida para el envío de correos. La implementación real
// usa SMTP; los tests inyectan un double.
type Mailer interface {
	SendPasswordReset(to, token string) error
}

// AuthUseCase casos de uso de autenticación: registro, login y reset de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg}
}

// Register crea un usuario con rol sales-rep y tags vacíos.
// Devuelve ErrInvalidInput si falta algún campo o las contraseñas no coinciden,
// y ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserSummary, error) {
	if in.FullName == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleSalesRep,
		Tags:         []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return &dto.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, nil
}

// Login verifica email/password y emite el token de sesión con rol y tags.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Tags:   user.Tags,
	}, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	}, nil
}

// ForgotPassword emite un token de reset de corta vida, lo persiste en el
// usuario y lo despacha por correo. Devuelve ErrUserNotFound si el email no
// existe (el endpoint responde 404, no un éxito silencioso).
func (uc *AuthUseCase) ForgotPassword(email string) error {
	if email == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	token, err := jwt.GenerateReset(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, user.ID, user.Email, uc.jwtCfg.ResetExpMinutes)
	if err != nil {
		return err
	}
	expires := time.Now().Add(time.Duration(uc.jwtCfg.ResetExpMinutes) * time.Minute)
	user.ResetToken = token
	user.ResetExpires = &expires
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	return uc.mailer.SendPasswordReset(user.Email, token)
}

// ResetPassword consume un token de reset: valida firma, expiración y propósito,
// compara contra el token almacenado en el usuario y re-hashea la contraseña.
// El token es de un solo uso: los campos de reset se limpian también en éxito.
func (uc *AuthUseCase) ResetPassword(token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrInvalidInput
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil || claims.Purpose != jwt.PurposePasswordReset {
		return domain.ErrResetTokenInvalid
	}
	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrResetTokenInvalid
	}
	// Debe coincidir con el token vigente: un token ya consumido (campos
	// limpios) o reemplazado por una solicitud posterior no sirve.
	if user.ResetToken == "" || user.ResetToken != token {
		return domain.ErrResetTokenInvalid
	}
	if user.ResetExpires == nil || time.Now().After(*user.ResetExpires) {
		return domain.ErrResetTokenInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetExpires = nil
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}
