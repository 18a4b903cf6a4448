package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	"github.com/BruksfildServices01/room-booking/internal/auth"
	"github.com/BruksfildServices01/room-booking/internal/config"
	"github.com/BruksfildServices01/room-booking/internal/httperr"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/infra/cache"
	"github.com/BruksfildServices01/room-booking/internal/infra/storage"
	"github.com/BruksfildServices01/room-booking/internal/middleware"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type tokenIssuer interface {
	Issue(userID uint, role string) (string, error)
}

type UserHandler struct {
	db     *gorm.DB
	config *config.Config
	tokens tokenIssuer
	cache  cache.Cache
	images storage.ImageStore
	audit  *audit.Dispatcher
}

func NewUserHandler(
	db *gorm.DB,
	cfg *config.Config,
	tokens tokenIssuer,
	c cache.Cache,
	images storage.ImageStore,
	audit *audit.Dispatcher,
) *UserHandler {
	return &UserHandler{
		db:     db,
		config: cfg,
		tokens: tokens,
		cache:  c,
		images: images,
		audit:  audit,
	}
}

// --------- Requests ---------

// RegisterRequest is accepted as JSON or as multipart form data; the
// multipart variant may carry an "image" file for master accounts.
type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Login     string `json:"login" form:"login" binding:"required"`
	Password  string `json:"password" form:"password" binding:"required"`
	Role      string `json:"role" form:"role" binding:"required"`

	PhoneNumber1 string `json:"phone_number_1" form:"phone_number_1"`
	PhoneNumber2 string `json:"phone_number_2" form:"phone_number_2"`
	Address      string `json:"address" form:"address"`
	Description  string `json:"description" form:"description"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Login     *string `json:"login"`
	Password  *string `json:"password"`
}

type DeleteProfileRequest struct {
	Password string `json:"password" binding:"required"`
}

// --------- Responses ---------

type UserResponse struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Login     string  `json:"login"`
	Role      string  `json:"role"`
	Token     string  `json:"token,omitempty"`
}

func userResponse(u *models.User, token string) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Login:     u.Login,
		Role:      u.Role,
		Token:     token,
	}
}

// --------- Helpers ---------

// parseLocation reads a "latitude, longitude" pair.
func parseLocation(s string) (float64, float64, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// masterIDOf returns the master profile id of a user, or 0 when it has none.
func masterIDOf(db *gorm.DB, userID uint) (uint, error) {
	var ids []uint
	if err := db.Model(&models.Master{}).
		Where("user_id = ?", userID).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

// dropMasterCache evicts the public master entry, which embeds the owner's name.
func (h *UserHandler) dropMasterCache(ctx context.Context, masterID uint) {
	if masterID == 0 {
		return
	}
	if err := h.cache.Delete(ctx, cache.MasterKey(masterID)); err != nil {
		log.Warn().Err(err).Uint("master_id", masterID).Msg("failed to invalidate master cache")
	}
}

func (h *UserHandler) loginTaken(c *gin.Context, login string) (bool, error) {
	var count int64
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("login = ?", login).
		Count(&count).Error
	return count > 0, err
}

// --------- Handlers ---------

func (h *UserHandler) CheckLogin(c *gin.Context) {
	login := strings.TrimSpace(c.Param("login"))

	taken, err := h.loginTaken(c, login)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"exists": taken})
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "login, password and role are required.")
		return
	}

	req.Login = strings.TrimSpace(req.Login)
	req.FirstName = strings.TrimSpace(req.FirstName)

	if len(req.Password) < auth.MinPasswordLength {
		httperr.BadRequest(c, "weak_password", "Password must have at least 6 characters.")
		return
	}
	if req.FirstName == "" {
		httperr.BadRequest(c, "first_name_required", "first_name is required.")
		return
	}

	var master *models.Master

	switch req.Role {
	case models.RoleUser:
	case models.RoleMaster:
		if req.PhoneNumber1 == "" || req.Address == "" {
			httperr.BadRequest(c, "master_fields_required", "phone_number_1 and address are required for masters.")
			return
		}
		lat, lng, ok := parseLocation(req.Address)
		if !ok {
			httperr.BadRequest(c, "invalid_location", "Expected address as 'latitude, longitude'.")
			return
		}
		master = &models.Master{
			PlaceName:    req.FirstName,
			PhoneNumber1: req.PhoneNumber1,
			PhoneNumber2: optional(req.PhoneNumber2),
			Latitude:     lat,
			Longitude:    lng,
			Description:  optional(req.Description),
			IsAvailable:  true,
		}
	default:
		httperr.BadRequest(c, "invalid_role", "role must be 'user' or 'master'.")
		return
	}

	taken, err := h.loginTaken(c, req.Login)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if taken {
		httperr.BadRequest(c, "login_taken", "User with this login already exists.")
		return
	}

	if master != nil {
		if raw, err := readImage(c); err == nil {
			url, err := storeImage(c.Request.Context(), h.images, "masters", raw)
			if err != nil {
				writeStorageError(c, err)
				return
			}
			master.ImageURL = &url
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		Login:        req.Login,
		PasswordHash: hashed,
		Role:         req.Role,
	}
	if req.Role == models.RoleUser {
		user.LastName = optional(req.LastName)
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if master == nil {
			return nil
		}

		var category models.Category
		if err := tx.Where(models.Category{Name: h.config.DefaultCategory}).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}

		master.UserID = user.ID
		master.CategoryID = category.ID
		return tx.Create(master).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "login_taken", "User with this login already exists.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"role": user.Role},
	})

	httpresp.Created(c, userResponse(&user, token))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "login and password are required.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("login = ?", strings.TrimSpace(req.Login)).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, userResponse(&user, token))
}

func (h *UserHandler) currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	var user models.User
	if err := db.First(&user, middleware.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return nil, false
		}
		httperr.FromError(c, err)
		return nil, false
	}
	return &user, true
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := h.currentUser(c, h.db.WithContext(c.Request.Context()))
	if !ok {
		return
	}
	httpresp.OK(c, userResponse(user, ""))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile payload.")
		return
	}

	user, ok := h.currentUser(c, h.db.WithContext(c.Request.Context()))
	if !ok {
		return
	}

	updates := map[string]any{}

	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) != "" {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		// an empty string clears the last name
		updates["last_name"] = optional(*req.LastName)
	}
	if req.Login != nil {
		login := strings.TrimSpace(*req.Login)
		if login != "" && login != user.Login {
			taken, err := h.loginTaken(c, login)
			if err != nil {
				httperr.FromError(c, err)
				return
			}
			if taken {
				httperr.BadRequest(c, "login_taken", "User with this login already exists.")
				return
			}
			updates["login"] = login
		}
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < auth.MinPasswordLength {
			httperr.BadRequest(c, "weak_password", "Password must have at least 6 characters.")
			return
		}
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		updates["password_hash"] = hashed
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(user).
			Updates(updates).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				httperr.BadRequest(c, "login_taken", "User with this login already exists.")
				return
			}
			httperr.FromError(c, err)
			return
		}

		if user.Role == models.RoleMaster {
			masterID, err := masterIDOf(h.db.WithContext(c.Request.Context()), user.ID)
			if err != nil {
				log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to resolve master for cache invalidation")
			}
			h.dropMasterCache(c.Request.Context(), masterID)
		}
	}

	updated, ok := h.currentUser(c, h.db.WithContext(c.Request.Context()))
	if !ok {
		return
	}

	token, err := h.tokens.Issue(updated.ID, updated.Role)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, userResponse(updated, token))
}

// DeleteProfile removes the account after re-checking the password. Orders,
// reviews and the master profile go with it through the cascading keys.
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	var req DeleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "password is required.")
		return
	}

	userID := middleware.UserID(c)

	errWrongPassword := httperr.ErrForbidden("invalid_credentials", "Password does not match.")

	var masterID uint

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("user_not_found", "User not found.")
			}
			return err
		}

		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			return errWrongPassword
		}

		if user.Role == models.RoleMaster {
			id, err := masterIDOf(tx, user.ID)
			if err != nil {
				return err
			}
			masterID = id
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.BadRequest(c, "user_in_use", "This account still has rooms referenced by orders.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	h.dropMasterCache(c.Request.Context(), masterID)

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &userID,
	})

	httpresp.OK(c, gin.H{"message": "Profile deleted."})
}
