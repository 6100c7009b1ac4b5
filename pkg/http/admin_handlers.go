package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"transporter-coordinator/pkg/auth"
	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/match"
	"transporter-coordinator/pkg/models"
	"transporter-coordinator/pkg/transport"
)

func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be numeric"})
		return 0, false
	}
	return uint(value), true
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var loginRequestSchema = z.Struct(z.Shape{
	"Username": z.String().Required(),
	"Password": z.String().Required(),
})

func (rs *RestfulServer) Login(c *gin.Context) {
	logger := common.GetLoggerWith(
		common.LoggerNameRestfulServer,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAuth),
	)

	var req LoginRequest
	if err := loginRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	user, err := auth.VerifyUser(rs.Transport.Db.Conn, req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.NewSessionToken(rs.JWTSecret, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("User logged in", zap.String("username", user.Username))

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"is_admin": user.IsAdmin,
		},
	})
}

func (rs *RestfulServer) GetCurrentUser(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
	})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

var changePasswordRequestSchema = z.Struct(z.Shape{
	"OldPassword": z.String().Required(),
	"NewPassword": z.String().Required(),
})

func (rs *RestfulServer) ChangePassword(c *gin.Context) {
	userID, ok := uintParam(c, "user_id")
	if !ok {
		return
	}

	caller := currentUser(c)
	if userID != caller.ID && !caller.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	var req ChangePasswordRequest
	if err := changePasswordRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if len(req.NewPassword) < 4 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 4 characters"})
		return
	}

	var user models.User
	if err := rs.Transport.Db.Conn.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect current password"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := rs.Transport.Db.Conn.Model(&user).Update("password_hash", hash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (rs *RestfulServer) ListUsers(c *gin.Context) {
	users := []models.User{}
	err := rs.Transport.Db.Conn.Order("created_at desc").Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

var createUserRequestSchema = z.Struct(z.Shape{
	"Username": z.String().Required(),
	"Password": z.String().Required(),
	"IsAdmin":  z.Bool(),
})

func (rs *RestfulServer) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := createUserRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
	}
	if err := rs.Transport.Db.Conn.Create(&user).Error; err != nil {
		// username carries a unique index
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

func (rs *RestfulServer) ListAPIKeys(c *gin.Context) {
	keys := []models.APIKey{}
	err := rs.Transport.Db.Conn.
		Where("user_id = ?", currentUser(c).ID).
		Order("created_at desc").
		Find(&keys).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, keys)
}

type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

var createAPIKeyRequestSchema = z.Struct(z.Shape{
	"Name": z.String().Default("New API Key"),
})

func (rs *RestfulServer) CreateAPIKey(c *gin.Context) {
	var req CreateAPIKeyRequest
	if err := createAPIKeyRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	// the raw key is returned exactly once; only its hash is stored
	key, record, err := auth.CreateAPIKey(rs.Transport.Db.Conn, currentUser(c).ID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": record.ID, "key": key, "name": record.Name})
}

func (rs *RestfulServer) DeleteAPIKey(c *gin.Context) {
	keyID, ok := uintParam(c, "key_id")
	if !ok {
		return
	}

	result := rs.Transport.Db.Conn.
		Where("id = ? AND user_id = ?", keyID, currentUser(c).ID).
		Delete(&models.APIKey{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "API key not found or unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (rs *RestfulServer) ListMachines(c *gin.Context) {
	machines, err := rs.Transport.Machines.ListForUser(currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, machines)
}

func (rs *RestfulServer) DetachMachine(c *gin.Context) {
	machineID, ok := uintParam(c, "machine_id")
	if !ok {
		return
	}

	err := rs.Transport.Machines.Detach(currentUser(c).ID, machineID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, transport.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
	case errors.Is(err, transport.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (rs *RestfulServer) ListPeripherals(c *gin.Context) {
	peripherals, err := rs.Transport.Peripherals.ListForUser(currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, peripherals)
}

type SearchRequest struct {
	Query string `json:"query"`
}

var searchRequestSchema = z.Struct(z.Shape{
	"Query": z.String(),
})

func (rs *RestfulServer) SearchPeripherals(c *gin.Context) {
	var req SearchRequest
	if err := searchRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	peripherals, err := rs.Transport.Peripherals.ListForUser(currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	if query == "" {
		c.JSON(http.StatusOK, peripherals)
		return
	}

	filtered := []models.PeripheralView{}
	for _, peripheral := range peripherals {
		if strings.Contains(strings.ToLower(peripheral.Name), query) {
			filtered = append(filtered, peripheral)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

func (rs *RestfulServer) SearchItems(c *gin.Context) {
	var req SearchRequest
	if err := searchRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusOK, []match.Match{})
		return
	}

	resolver := match.NewResolver(rs.Transport.Cfg.Match)
	matches := resolver.FilterCatalog(req.Query, match.DefaultCatalog())
	if len(matches) > 20 {
		matches = matches[:20]
	}
	c.JSON(http.StatusOK, matches)
}

func (rs *RestfulServer) ListRoutes(c *gin.Context) {
	routes, err := rs.Transport.Registry.RoutesForUser(currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, routes)
}

type CreateRouteRequest struct {
	Name               string   `json:"name"`
	SourcePeripheralID int      `json:"source_peripheral_id"`
	DestPeripheralID   int      `json:"dest_peripheral_id"`
	ItemFilter         string   `json:"item_filter"`
	ItemNames          []string `json:"item_names"`
}

var createRouteRequestSchema = z.Struct(z.Shape{
	"Name":               z.String().Required(),
	"SourcePeripheralID": z.Int().Required(),
	"DestPeripheralID":   z.Int().Required(),
	"ItemFilter":         z.String(),
	"ItemNames":          z.Slice(z.String()),
})

func (rs *RestfulServer) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := createRouteRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, source, and destination required"})
		return
	}

	route, err := rs.Transport.Registry.CreateRoute(currentUser(c).ID, models.CreateRouteInput{
		Name:               req.Name,
		SourcePeripheralID: uint(req.SourcePeripheralID),
		DestPeripheralID:   uint(req.DestPeripheralID),
		ItemFilter:         req.ItemFilter,
		ItemNames:          req.ItemNames,
	})
	if err != nil {
		rs.routeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, route)
}

// UpdateRoutePatch distinguishes absent fields from zero values, so it is
// decoded with encoding/json pointers rather than a schema.
type UpdateRoutePatch struct {
	Name               *string   `json:"name"`
	SourcePeripheralID *uint     `json:"source_peripheral_id"`
	DestPeripheralID   *uint     `json:"dest_peripheral_id"`
	ItemFilter         *string   `json:"item_filter"`
	Enabled            *bool     `json:"enabled"`
	ItemNames          *[]string `json:"item_names"`
}

func (rs *RestfulServer) UpdateRoute(c *gin.Context) {
	routeID, ok := uintParam(c, "route_id")
	if !ok {
		return
	}

	var patch UpdateRoutePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := rs.Transport.Registry.UpdateRoute(currentUser(c).ID, routeID, models.UpdateRouteInput{
		Name:               patch.Name,
		SourcePeripheralID: patch.SourcePeripheralID,
		DestPeripheralID:   patch.DestPeripheralID,
		ItemFilter:         patch.ItemFilter,
		Enabled:            patch.Enabled,
		ItemNames:          patch.ItemNames,
	})
	if err != nil {
		rs.routeError(c, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

func (rs *RestfulServer) DeleteRoute(c *gin.Context) {
	routeID, ok := uintParam(c, "route_id")
	if !ok {
		return
	}

	if err := rs.Transport.Registry.DeleteRoute(currentUser(c).ID, routeID); err != nil {
		rs.routeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (rs *RestfulServer) routeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, transport.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid peripheral"})
	case errors.Is(err, transport.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Peripherals must belong to your machines"})
	case errors.Is(err, transport.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
