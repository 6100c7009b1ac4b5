package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"transporter-coordinator/pkg/auth"
	"transporter-coordinator/pkg/models"
	"transporter-coordinator/pkg/transport"
)

const (
	ctxKeyUser     = "auth_user"
	ctxKeyAPIKeyID = "auth_api_key_id"
)

type RestfulServer struct {
	Server           *gin.Engine
	Transport        *transport.Transport
	RateLimiterStore *transport.RateLimiterStore
	JWTSecret        []byte
}

func (rs *RestfulServer) GetLimiter(machineID uint) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(machineID)
	}
}

func (rs *RestfulServer) CheckMachineLimiter(machineID uint) bool {
	limiter := rs.GetLimiter(machineID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(machineID uint, machineRate float64, machineBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(machineID, rate.Limit(machineRate), machineBurst)
}

// APIKeyRequired guards the machine-facing endpoints. The key comes from
// the X-API-Key header; verification also stamps last_used.
func (rs *RestfulServer) APIKeyRequired(c *gin.Context) {
	key := c.GetHeader("X-API-Key")
	if key == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
		return
	}

	apiKey, user, err := auth.VerifyAPIKey(rs.Transport.Db.Conn, key)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
		return
	}

	c.Set(ctxKeyUser, user)
	c.Set(ctxKeyAPIKeyID, apiKey.ID)
	c.Next()
}

// LoginRequired guards the management endpoints with a bearer session
// token.
func (rs *RestfulServer) LoginRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	userID, err := auth.ParseSessionToken(rs.JWTSecret, token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var user models.User
	if err := rs.Transport.Db.Conn.First(&user, "id = ?", userID).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.Set(ctxKeyUser, &user)
	c.Next()
}

func (rs *RestfulServer) AdminRequired(c *gin.Context) {
	if !currentUser(c).IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
		return
	}
	c.Next()
}

// currentUser is only valid behind APIKeyRequired or LoginRequired.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxKeyUser).(*models.User)
}

func currentAPIKeyID(c *gin.Context) uint {
	return c.MustGet(ctxKeyAPIKeyID).(uint)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	api := rs.Server.Group("/api")

	api.POST("/login", rs.Login)

	machine := api.Group("", rs.APIKeyRequired)
	{
		machine.POST("/auth", rs.MachineAuth)
		machine.POST("/peripherals", rs.MachineReportPeripherals)
		machine.GET("/routes", rs.MachineGetRoutes)
		machine.GET("/commands", rs.MachineGetCommands)
		machine.POST("/status", rs.MachineUpdateStatus)
	}

	mgmt := api.Group("", rs.LoginRequired)
	{
		mgmt.GET("/user/me", rs.GetCurrentUser)
		mgmt.PUT("/users/:user_id/password", rs.ChangePassword)

		mgmt.GET("/api_keys", rs.ListAPIKeys)
		mgmt.POST("/api_keys", rs.CreateAPIKey)
		mgmt.DELETE("/api_keys/:key_id", rs.DeleteAPIKey)

		mgmt.GET("/machines", rs.ListMachines)
		mgmt.DELETE("/machines/:machine_id", rs.DetachMachine)

		mgmt.GET("/peripherals", rs.ListPeripherals)
		mgmt.POST("/peripherals/search", rs.SearchPeripherals)

		mgmt.POST("/items/search", rs.SearchItems)

		mgmt.GET("/mgmt/routes", rs.ListRoutes)
		mgmt.POST("/mgmt/routes", rs.CreateRoute)
		mgmt.PUT("/mgmt/routes/:route_id", rs.UpdateRoute)
		mgmt.DELETE("/mgmt/routes/:route_id", rs.DeleteRoute)

		admin := mgmt.Group("", rs.AdminRequired)
		{
			admin.GET("/users", rs.ListUsers)
			admin.POST("/users", rs.CreateUser)
		}
	}
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
