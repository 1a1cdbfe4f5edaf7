package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"lumenportal/internal/audit"
	"lumenportal/internal/auth"
	"lumenportal/internal/cache"
	"lumenportal/internal/model"
	"lumenportal/internal/repository"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 8

const (
	usersCacheKey = "users:list"
	usersCacheTTL = 5 * time.Minute
)

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService is the authentication and user-management core. Every operation
// is total: expected failures come back as failed results and unexpected ones
// are logged and collapsed to a generic internal-error result.
type AuthService interface {
	Login(ctx context.Context, email, password string) LoginResult
	RequireAuth(token string, roles ...model.Role) AuthResult
	SelfRegister(ctx context.Context, name, email, password, sector string) Result
	CreateUser(ctx context.Context, token, name, email, password string, level int, sector string) Result
	ListUsers(ctx context.Context, token string) ListUsersResult
	ChangeAccessLevel(ctx context.Context, token string, targetID, newLevel int) Result
	UpdateUser(ctx context.Context, token string, targetID int, input UpdateUserInput) Result
	DeleteUser(ctx context.Context, token string, targetID int) Result
}

type authService struct {
	users    repository.UserRepository
	codec    *auth.JWTService
	recorder *audit.Recorder
	cache    *cache.Client
}

// NewAuthService builds the service core.
func NewAuthService(users repository.UserRepository, codec *auth.JWTService, recorder *audit.Recorder, cacheClient *cache.Client) AuthService {
	return &authService{
		users:    users,
		codec:    codec,
		recorder: recorder,
		cache:    cacheClient,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeText(value string) string {
	return strings.TrimSpace(value)
}

func isValidEmail(email string) bool {
	return emailRE.MatchString(email)
}

// validateNewUser checks the shape of a new account. The returned message is
// empty when everything is acceptable.
func validateNewUser(name, email, password string, level model.AccessLevel, sector string) string {
	if name == "" {
		return MsgNameRequired
	}
	if sector == "" {
		return MsgSectorRequired
	}
	if !isValidEmail(email) {
		return MsgEmailInvalid
	}
	if !level.Valid() {
		return MsgLevelInvalid
	}
	if len(strings.TrimSpace(password)) < MinPasswordLen {
		return fmt.Sprintf(MsgPasswordTooShortFmt, MinPasswordLen)
	}
	return ""
}

// Login validates credentials and issues a session token. The same generic
// message covers unknown emails and wrong passwords so login cannot be used
// as an account-existence oracle.
func (s *authService) Login(ctx context.Context, email, password string) LoginResult {
	normalized := normalizeEmail(email)
	if normalized == "" || password == "" {
		return LoginResult{Result: fail(KindUnauthorized, MsgInvalidCredentials)}
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.recorder.LogError(ctx, "login", "Erro ao realizar login", err.Error(), "")
		return LoginResult{Result: fail(KindInternal, MsgLoginInternal)}
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return LoginResult{Result: fail(KindUnauthorized, MsgInvalidCredentials)}
	}

	token, err := s.codec.Generate(user)
	if err != nil {
		s.recorder.LogError(ctx, "login", "Erro ao realizar login", err.Error(), "")
		return LoginResult{Result: fail(KindInternal, MsgLoginInternal)}
	}

	role := user.Role()
	return LoginResult{
		Result: ok(""),
		Token:  token,
		Role:   role,
		User: &UserInfo{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Sector: user.Sector,
			Role:   role,
		},
	}
}

// RequireAuth verifies the session token and, when roles are given, that the
// caller holds one of them.
func (s *authService) RequireAuth(token string, roles ...model.Role) AuthResult {
	claims, err := s.codec.Decode(token)
	if err != nil {
		return AuthResult{Result: fail(KindUnauthorized, MsgSessionExpired)}
	}

	if len(roles) > 0 {
		allowed := false
		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, string(r))
			if claims.Role == r {
				allowed = true
			}
		}
		if !allowed {
			sort.Strings(names)
			return AuthResult{Result: fail(KindForbidden, fmt.Sprintf(MsgAccessDeniedFmt, strings.Join(names, ", ")))}
		}
	}

	return AuthResult{Result: ok(""), User: claims}
}

// SelfRegister creates an account through the public signup path. The granted
// level is always NORMAL; the signature admits no level at all.
func (s *authService) SelfRegister(ctx context.Context, name, email, password, sector string) Result {
	normalizedName := normalizeText(name)
	normalizedEmail := normalizeEmail(email)
	normalizedSector := normalizeText(sector)

	if msg := validateNewUser(normalizedName, normalizedEmail, password, model.LevelNormal, normalizedSector); msg != "" {
		return fail(KindInvalidInput, msg)
	}

	newID, refusal, err := s.insertUser(ctx, normalizedName, normalizedEmail, password, model.LevelNormal, normalizedSector)
	if err != nil {
		s.recorder.LogError(ctx, "cadastro_publico_usuario", "Erro no cadastro publico de usuario", err.Error(), "")
		return fail(KindInternal, MsgRegisterInternal)
	}
	if refusal != nil {
		return *refusal
	}

	s.invalidateUsersCache(ctx)
	s.recorder.Event(ctx, model.AuditUserSelfRegister, newID, map[string]interface{}{
		"usuario": normalizedName,
		"email":   normalizedEmail,
		"nivel":   model.LevelNormal,
		"setor":   normalizedSector,
		"role":    model.LevelNormal.Role(),
	}, "", nil)

	return ok(MsgAccountCreated)
}

// CreateUser creates an account on behalf of an administrator. Only NORMAL
// accounts can be minted here; privilege elevation goes through
// ChangeAccessLevel so the escalation surface stays in one place.
func (s *authService) CreateUser(ctx context.Context, token, name, email, password string, level int, sector string) Result {
	authRes := s.RequireAuth(token, model.RoleAdmin)
	if !authRes.OK {
		return authRes.Result
	}

	if model.AccessLevel(level) != model.LevelNormal {
		return fail(KindInvalidInput, MsgCreateMustBeNormal)
	}

	normalizedName := normalizeText(name)
	normalizedEmail := normalizeEmail(email)
	normalizedSector := normalizeText(sector)

	if msg := validateNewUser(normalizedName, normalizedEmail, password, model.LevelNormal, normalizedSector); msg != "" {
		return fail(KindInvalidInput, msg)
	}

	newID, refusal, err := s.insertUser(ctx, normalizedName, normalizedEmail, password, model.LevelNormal, normalizedSector)
	if err != nil {
		s.recorder.LogError(ctx, "criar_usuario", "Erro ao criar usuario", err.Error(), token)
		return fail(KindInternal, MsgCreateInternal)
	}
	if refusal != nil {
		return *refusal
	}

	s.invalidateUsersCache(ctx)
	s.recorder.Event(ctx, model.AuditUserCreate, newID, map[string]interface{}{
		"usuario": normalizedName,
		"email":   normalizedEmail,
		"nivel":   model.LevelNormal,
		"setor":   normalizedSector,
		"role":    model.LevelNormal.Role(),
	}, token, nil)

	return ok(MsgUserCreated)
}

// insertUser performs the duplicate-email check and the insert inside one
// transaction. A non-nil refusal is a domain rejection to surface as-is; a
// non-nil error is an unexpected store failure.
func (s *authService) insertUser(ctx context.Context, name, email, password string, level model.AccessLevel, sector string) (uint, *Result, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Level:        level,
		Sector:       sector,
	}

	var refusal *Result
	txErr := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		taken, err := repo.EmailTaken(ctx, email, 0)
		if err != nil {
			return err
		}
		if taken {
			r := fail(KindConflict, MsgUserAlreadyExists)
			refusal = &r
			return nil
		}
		return repo.Create(ctx, user)
	})
	if txErr != nil {
		return 0, nil, txErr
	}
	return user.ID, refusal, nil
}

// ListUsers returns every account with its derived role label. Password
// hashes never leave the repository layer. The listing is cached briefly and
// invalidated on every mutation.
func (s *authService) ListUsers(ctx context.Context, token string) ListUsersResult {
	authRes := s.RequireAuth(token, model.RoleAdmin)
	if !authRes.OK {
		return ListUsersResult{Result: authRes.Result}
	}

	if data, _ := s.cache.Get(ctx, usersCacheKey); data != nil {
		var cached []UserView
		if err := json.Unmarshal(data, &cached); err == nil {
			return ListUsersResult{Result: ok(""), Data: cached}
		}
	}

	users, err := s.users.List(ctx)
	if err != nil {
		s.recorder.LogError(ctx, "listar_usuarios", "Erro ao listar usuarios", err.Error(), token)
		return ListUsersResult{Result: fail(KindInternal, MsgListInternal)}
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, UserView{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Sector:    u.Sector,
			Level:     u.Level,
			Role:      u.Role(),
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}

	if payload, err := json.Marshal(views); err == nil {
		_ = s.cache.Set(ctx, usersCacheKey, payload, usersCacheTTL)
	}
	return ListUsersResult{Result: ok(""), Data: views}
}

// ChangeAccessLevel moves a user to another level. Demoting the last
// remaining administrator is refused; the count check and the update run in
// one transaction.
func (s *authService) ChangeAccessLevel(ctx context.Context, token string, targetID, newLevel int) Result {
	authRes := s.RequireAuth(token, model.RoleAdmin)
	if !authRes.OK {
		return authRes.Result
	}

	if targetID <= 0 {
		return fail(KindInvalidInput, MsgTargetInvalid)
	}
	level, err := model.ParseLevel(newLevel)
	if err != nil {
		return fail(KindInvalidInput, MsgLevelInvalid)
	}

	var (
		out      Result
		oldLevel model.AccessLevel
		changed  bool
	)
	txErr := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		current, err := repo.FindByID(ctx, uint(targetID))
		if errors.Is(err, repository.ErrUserNotFound) {
			out = fail(KindNotFound, MsgUserNotFound)
			return nil
		}
		if err != nil {
			return err
		}

		oldLevel = current.Level
		if current.Level == level {
			out = ok(MsgLevelAlreadySet)
			return nil
		}

		if current.Level == model.LevelAdmin && level != model.LevelAdmin {
			admins, err := repo.CountByLevel(ctx, model.LevelAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				out = fail(KindConflict, MsgLastAdmin)
				return nil
			}
		}

		if err := repo.UpdateFields(ctx, uint(targetID), map[string]interface{}{"nivel": level}); err != nil {
			return err
		}
		changed = true
		out = ok(MsgLevelUpdated)
		return nil
	})
	if txErr != nil {
		s.recorder.LogError(ctx, "alterar_nivel_acesso",
			fmt.Sprintf("Erro ao alterar nivel de acesso do usuario %d", targetID), txErr.Error(), token)
		return fail(KindInternal, MsgLevelInternal)
	}

	if changed {
		s.invalidateUsersCache(ctx)
		actorID := authRes.User.UserID
		s.recorder.Event(ctx, model.AuditUserUpdateRole, uint(targetID), map[string]interface{}{
			"old_nivel": oldLevel,
			"new_nivel": level,
			"old_role":  oldLevel.Role(),
			"new_role":  level.Role(),
			"actor_id":  actorID,
		}, token, nil)
	}
	return out
}

// UpdateUser applies a partial update: blank strings and a nil level leave
// the field untouched. Passwords are re-hashed, email uniqueness is
// re-checked excluding the target's own row and the last-admin floor holds
// for level changes.
func (s *authService) UpdateUser(ctx context.Context, token string, targetID int, input UpdateUserInput) Result {
	authRes := s.RequireAuth(token, model.RoleAdmin)
	if !authRes.OK {
		return authRes.Result
	}

	if targetID <= 0 {
		return fail(KindInvalidInput, MsgTargetInvalid)
	}
	if input.Level != nil && !input.Level.Valid() {
		return fail(KindInvalidInput, MsgLevelInvalid)
	}

	normalizedName := normalizeText(input.Name)
	normalizedEmail := normalizeEmail(input.Email)
	normalizedSector := normalizeText(input.Sector)
	trimmedPassword := strings.TrimSpace(input.Password)

	if normalizedEmail != "" && !isValidEmail(normalizedEmail) {
		return fail(KindInvalidInput, MsgEmailInvalid)
	}
	if trimmedPassword != "" && len(trimmedPassword) < MinPasswordLen {
		return fail(KindInvalidInput, fmt.Sprintf(MsgPasswordTooShortFmt, MinPasswordLen))
	}

	var (
		out           Result
		changedFields []string
		oldData       map[string]interface{}
		newData       map[string]interface{}
		changed       bool
	)
	txErr := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		current, err := repo.FindByID(ctx, uint(targetID))
		if errors.Is(err, repository.ErrUserNotFound) {
			out = fail(KindNotFound, MsgUserNotFound)
			return nil
		}
		if err != nil {
			return err
		}

		if input.Level != nil && current.Level == model.LevelAdmin && *input.Level != model.LevelAdmin {
			admins, err := repo.CountByLevel(ctx, model.LevelAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				out = fail(KindConflict, MsgLastAdmin)
				return nil
			}
		}

		if normalizedEmail != "" {
			taken, err := repo.EmailTaken(ctx, normalizedEmail, uint(targetID))
			if err != nil {
				return err
			}
			if taken {
				out = fail(KindConflict, MsgEmailTaken)
				return nil
			}
		}

		fields := map[string]interface{}{}
		if normalizedName != "" {
			fields["usuario"] = normalizedName
		}
		if normalizedEmail != "" {
			fields["email"] = normalizedEmail
		}
		if input.Level != nil {
			fields["nivel"] = *input.Level
		}
		if normalizedSector != "" {
			fields["setor"] = normalizedSector
		}
		if trimmedPassword != "" {
			hash, err := auth.HashPassword(input.Password)
			if err != nil {
				return err
			}
			fields["password"] = hash
		}

		if len(fields) == 0 {
			out = fail(KindInvalidInput, MsgNothingToUpdate)
			return nil
		}

		changedFields = make([]string, 0, len(fields))
		for name := range fields {
			changedFields = append(changedFields, name)
		}
		sort.Strings(changedFields)

		oldData = map[string]interface{}{
			"id":      current.ID,
			"usuario": current.Name,
			"email":   current.Email,
			"nivel":   current.Level,
			"setor":   current.Sector,
		}

		if err := repo.UpdateFields(ctx, uint(targetID), fields); err != nil {
			return err
		}

		updated, err := repo.FindByID(ctx, uint(targetID))
		if err != nil {
			return err
		}
		newData = map[string]interface{}{
			"usuario": updated.Name,
			"email":   updated.Email,
			"nivel":   updated.Level,
			"setor":   updated.Sector,
		}
		changed = true
		out = ok(MsgUserUpdated)
		return nil
	})
	if txErr != nil {
		s.recorder.LogError(ctx, "atualizar_usuario", "Erro ao atualizar usuario", txErr.Error(), token)
		return fail(KindInternal, MsgUpdateInternal)
	}

	if changed {
		s.invalidateUsersCache(ctx)
		s.recorder.Event(ctx, model.AuditUserUpdate, uint(targetID), map[string]interface{}{
			"updated_fields": changedFields,
			"old_data":       oldData,
			"new_data":       newData,
		}, token, nil)
	}
	return out
}

// DeleteUser removes an account. Self-deletion is refused, as is any delete
// that would empty the store or remove the last administrator.
func (s *authService) DeleteUser(ctx context.Context, token string, targetID int) Result {
	authRes := s.RequireAuth(token, model.RoleAdmin)
	if !authRes.OK {
		return authRes.Result
	}

	if targetID <= 0 {
		return fail(KindInvalidInput, MsgTargetInvalid)
	}
	actorID := authRes.User.UserID
	if actorID == uint(targetID) {
		return fail(KindForbidden, MsgNoSelfDelete)
	}

	var (
		out     Result
		changed bool
	)
	txErr := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		total, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if total <= 1 {
			out = fail(KindConflict, MsgLastUser)
			return nil
		}

		current, err := repo.FindByID(ctx, uint(targetID))
		if errors.Is(err, repository.ErrUserNotFound) {
			out = fail(KindNotFound, MsgUserNotFound)
			return nil
		}
		if err != nil {
			return err
		}

		if current.Level == model.LevelAdmin {
			admins, err := repo.CountByLevel(ctx, model.LevelAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				out = fail(KindConflict, MsgLastAdmin)
				return nil
			}
		}

		if err := repo.Delete(ctx, uint(targetID)); err != nil {
			return err
		}
		changed = true
		out = ok(MsgUserDeleted)
		return nil
	})
	if txErr != nil {
		s.recorder.LogError(ctx, "deletar_usuario",
			fmt.Sprintf("Erro ao deletar usuario %d", targetID), txErr.Error(), token)
		return fail(KindInternal, MsgDeleteInternal)
	}

	if changed {
		s.invalidateUsersCache(ctx)
		s.recorder.Event(ctx, model.AuditUserDelete, uint(targetID), nil, token, nil)
	}
	return out
}

func (s *authService) invalidateUsersCache(ctx context.Context) {
	_ = s.cache.Delete(ctx, usersCacheKey)
}
