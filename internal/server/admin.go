package server

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/alexjean/devify/internal/analytics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	adminCookie    = "admin_token"
	adminCookieAge = 3600 * 24

	devAdminUsername = "admin"
	devAdminPassword = "admin123"
)

// AdminCredentials are checked on /admin/login.
type AdminCredentials struct {
	Username string
	Password string
}

// adminAuth guards the privacy-conscious admin area with a random token
// per process.
type adminAuth struct {
	token     string
	creds     AdminCredentials
	analytics *analytics.Service
	logger    *zap.Logger
}

func newAdminAuth(creds AdminCredentials, svc *analytics.Service, logger *zap.Logger) (*adminAuth, error) {
	token, err := analytics.RandomToken()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	logger = logger.Named("admin")

	// Default credentials for development only
	if gin.Mode() == gin.DebugMode {
		if creds.Username == "" {
			creds.Username = devAdminUsername
			logger.Warn("Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
		if creds.Password == "" {
			creds.Password = devAdminPassword
			logger.Warn("Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
		logger.Debug("Admin token (dev only)", zap.String("token", token))
	}
	if creds.Username == "" || creds.Password == "" {
		logger.Warn("Admin credentials not configured; admin login is disabled")
	}
	logger.Info("Admin access available at: /admin/login")

	return &adminAuth{token: token, creds: creds, analytics: svc, logger: logger}, nil
}

func (a *adminAuth) valid(username, password string) bool {
	if a.creds.Username == "" || a.creds.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
	return userOK && passOK
}

// Middleware to check admin authentication
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *adminAuth) routes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		client := a.analytics.Hash(c.ClientIP())
		if !a.valid(c.PostForm("username"), c.PostForm("password")) {
			a.logger.Warn("Failed admin login attempt", zap.String("client", client))
			c.HTML(http.StatusUnauthorized, "admin-login", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, a.token, adminCookieAge, "/admin", "", false, true)
		a.logger.Info("Admin login successful", zap.String("client", client))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		a.logger.Info("Admin logout", zap.String("client", a.analytics.Hash(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	group := r.Group("/admin", a.middleware())

	group.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.analytics.Stats(c.Request.Context())
		if err != nil {
			a.logger.Error("Error loading admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard", gin.H{"stats": stats})
	})

	group.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	group.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.analytics.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			a.logger.Error("Error loading visitors", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors", gin.H{"visitors": visitors})
	})

	group.POST("/privacy/cleanup", func(c *gin.Context) {
		if err := a.analytics.Cleanup(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Privacy cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup completed"})
	})

	// Admin statistics export (for backups or analysis)
	group.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=devify-stats.json")
		a.logger.Info("Admin stats exported", zap.String("client", a.analytics.Hash(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}
