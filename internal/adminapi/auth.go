package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/internal/webserver"
	"github.com/remiedy/catering/pkg/common"
)

// ErrInvalidCredentials is deliberately generic: callers never learn whether
// the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid admin credentials")

func registerAuthRoutes() {
	// login and logout live outside the gated /admin group
	webserver.ApiPOST("/admin/login", adminLogin)
	webserver.ApiGET("/admin/logout", adminLogout)
}

// VerifyAdminCredentials looks up an enabled admin account by username and
// compares the supplied password against the stored bcrypt hash.
func VerifyAdminCredentials(db *gorm.DB, username, password string) (*domain.SysUser, error) {
	var user domain.SysUser
	err := db.Where("username = ? AND role = ?", username, domain.RoleAdmin).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Status != common.ENABLED {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login form", nil)
	}
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	user, err := VerifyAdminCredentials(GetDB(c), payload.Username, payload.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		zap.L().Warn("admin login rejected", zap.String("username", payload.Username), zap.String("ip", c.RealIP()))
		return fail(c, http.StatusUnauthorized, "AUTH_FAILURE", "Invalid admin credentials", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to verify credentials", err.Error())
	}

	if err := webserver.SetAdmin(c, true); err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to establish session", err.Error())
	}

	GetDB(c).Model(&domain.SysUser{}).Where("id = ?", user.ID).
		Update("last_login", time.Now())
	writeOprLog(c, user.Username, "admin_login", "admin signed in")

	return ok(c, map[string]interface{}{
		"username": user.Username,
		"redirect": "/admin/dashboard",
	})
}

func adminLogout(c echo.Context) error {
	if err := webserver.SetAdmin(c, false); err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to clear session", err.Error())
	}
	return ok(c, map[string]interface{}{"redirect": "/"})
}

// writeOprLog records an admin action for the audit trail.
func writeOprLog(c echo.Context, oprName, action, desc string) {
	log := domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   oprName,
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := GetDB(c).Create(&log).Error; err != nil {
		zap.L().Error("failed to write operation log", zap.Error(err))
	}
}
