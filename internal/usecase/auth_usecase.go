package usecase

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"app/internal/session"
)

// トークンに入れるロール。
const (
	RoleUser    = "USER"
	RoleManager = "MANAGER"
)

// JWTを発行する約束。
type TokenIssuer interface {
	Issue(sessionID string, userName string, role string, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在時刻の約束（テストで差し替える）。
type Clock interface {
	Now() time.Time
}

type AuthUsecase struct {
	sessions *session.Store
	issuer   TokenIssuer
	clock    Clock

	// 共有パスワードは平文一致かbcryptハッシュ照合のどちらか。
	// ハッシュが設定されていればそちらを優先する。
	managerPassword     string
	managerPasswordHash string
}

func NewAuthUsecase(
	sessions *session.Store,
	issuer TokenIssuer,
	clock Clock,
	managerPassword string,
	managerPasswordHash string,
) *AuthUsecase {
	return &AuthUsecase{
		sessions:            sessions,
		issuer:              issuer,
		clock:               clock,
		managerPassword:     managerPassword,
		managerPasswordHash: managerPasswordHash,
	}
}

type StartSessionOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserName  string    `json:"user_name"`
}

// 名前だけでセッションを開始する。空の名前は拒否。
func (u *AuthUsecase) StartSession(name string) (StartSessionOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return StartSessionOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	s := u.sessions.Create(name)
	tok, exp, err := u.issuer.Issue(s.ID, name, RoleUser, u.clock.Now())
	if err != nil {
		u.sessions.Destroy(s.ID)
		return StartSessionOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return StartSessionOutput{Token: tok, ExpiresAt: exp, UserName: name}, nil
}

// カートも履歴もセッションごと破棄する。
func (u *AuthUsecase) Logout(sessionID string) {
	u.sessions.Destroy(sessionID)
}

type ManagerLoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// 共有パスワードを照合してMANAGERトークンを発行する。
func (u *AuthUsecase) ManagerLogin(password string) (ManagerLoginOutput, error) {
	if !u.verifyManagerPassword(password) {
		return ManagerLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid password")
	}

	tok, exp, err := u.issuer.Issue("", "manager", RoleManager, u.clock.Now())
	if err != nil {
		return ManagerLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return ManagerLoginOutput{Token: tok, ExpiresAt: exp}, nil
}

func (u *AuthUsecase) verifyManagerPassword(password string) bool {
	if u.managerPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(u.managerPasswordHash), []byte(password)) == nil
	}
	if u.managerPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.managerPassword), []byte(password)) == 1
}
