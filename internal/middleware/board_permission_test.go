package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todoboard/internal/constants"
	"todoboard/internal/middleware"
	"todoboard/internal/models"
	"todoboard/internal/repository"
)

func setupMiddlewareTestDB(t *testing.T) (*gorm.DB, repository.PermissionRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardPermission{},
		&models.Todo{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, repository.NewPermissionRepository(db)
}

// setUser simulates an upstream auth middleware having resolved the session.
func setUser(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func seedBoardWithPermissions(t *testing.T, db *gorm.DB) (boardID, ownerID, editorID, viewerID uint64) {
	t.Helper()

	users := make([]*models.User, 3)
	for i, name := range []string{"owner", "editor", "viewer"} {
		users[i] = &models.User{Username: name, Email: name + "@example.com", PasswordHash: "hashed"}
		require.NoError(t, db.Create(users[i]).Error)
	}

	board := &models.Board{Name: "Gated Board", OwnerID: users[0].ID}
	require.NoError(t, repository.NewBoardRepository(db).CreateWithOwner(board))

	permRepo := repository.NewPermissionRepository(db)
	require.NoError(t, permRepo.Create(&models.BoardPermission{
		BoardID: board.ID, UserID: users[1].ID, Level: models.PermissionEditor, GrantedAt: time.Now(),
	}))
	require.NoError(t, permRepo.Create(&models.BoardPermission{
		BoardID: board.ID, UserID: users[2].ID, Level: models.PermissionViewer, GrantedAt: time.Now(),
	}))

	return board.ID, users[0].ID, users[1].ID, users[2].ID
}

func gatedRouter(perms repository.PermissionRepository, userID uint64, level models.PermissionLevel) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/boards")
	if userID != 0 {
		group.Use(setUser(userID))
	}
	group.GET("/:id", middleware.RequireBoardPermission(perms, level), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "granted"})
	})
	return r
}

func TestRequireBoardPermission_Unauthenticated(t *testing.T) {
	_, perms := setupMiddlewareTestDB(t)
	r := gatedRouter(perms, 0, models.PermissionViewer)

	req := httptest.NewRequest(http.MethodGet, "/boards/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireBoardPermission_InvalidBoardID(t *testing.T) {
	db, perms := setupMiddlewareTestDB(t)
	_, ownerID, _, _ := seedBoardWithPermissions(t, db)
	r := gatedRouter(perms, ownerID, models.PermissionViewer)

	req := httptest.NewRequest(http.MethodGet, "/boards/not-a-number", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireBoardPermission_Insufficient(t *testing.T) {
	db, perms := setupMiddlewareTestDB(t)
	boardID, _, editorID, viewerID := seedBoardWithPermissions(t, db)

	cases := []struct {
		name     string
		userID   uint64
		required models.PermissionLevel
	}{
		{"viewer blocked from editor route", viewerID, models.PermissionEditor},
		{"viewer blocked from owner route", viewerID, models.PermissionOwner},
		{"editor blocked from owner route", editorID, models.PermissionOwner},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gatedRouter(perms, tc.userID, tc.required)

			req := httptest.NewRequest(http.MethodGet, "/boards/"+strconv.FormatUint(boardID, 10), nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusForbidden, w.Code)
			require.Contains(t, w.Body.String(), "INSUFFICIENT_PERMISSIONS")
		})
	}
}

func TestRequireBoardPermission_Granted(t *testing.T) {
	db, perms := setupMiddlewareTestDB(t)
	boardID, ownerID, editorID, viewerID := seedBoardWithPermissions(t, db)

	cases := []struct {
		name     string
		userID   uint64
		required models.PermissionLevel
	}{
		{"viewer passes viewer route", viewerID, models.PermissionViewer},
		{"editor passes viewer route", editorID, models.PermissionViewer},
		{"editor passes editor route", editorID, models.PermissionEditor},
		{"owner passes owner route", ownerID, models.PermissionOwner},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gatedRouter(perms, tc.userID, tc.required)

			req := httptest.NewRequest(http.MethodGet, "/boards/"+strconv.FormatUint(boardID, 10), nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRequireBoardPermission_NoGrant(t *testing.T) {
	db, perms := setupMiddlewareTestDB(t)
	boardID, _, _, _ := seedBoardWithPermissions(t, db)

	stranger := &models.User{Username: "stranger", Email: "stranger@example.com", PasswordHash: "hashed"}
	require.NoError(t, db.Create(stranger).Error)

	r := gatedRouter(perms, stranger.ID, models.PermissionViewer)

	req := httptest.NewRequest(http.MethodGet, "/boards/"+strconv.FormatUint(boardID, 10), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestInjectBoardPermission(t *testing.T) {
	db, perms := setupMiddlewareTestDB(t)
	boardID, _, editorID, _ := seedBoardWithPermissions(t, db)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boards/:id",
		setUser(editorID),
		middleware.InjectBoardPermission(perms),
		func(c *gin.Context) {
			level, ok := middleware.GetBoardPermission(c)
			require.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"level": level})
		})

	req := httptest.NewRequest(http.MethodGet, "/boards/"+strconv.FormatUint(boardID, 10), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "editor")
}

func TestInjectBoardPermission_NoGrantDoesNotFail(t *testing.T) {
	db, perms := setupMiddlewareTestDB(t)
	boardID, _, _, _ := seedBoardWithPermissions(t, db)

	stranger := &models.User{Username: "stranger", Email: "stranger@example.com", PasswordHash: "hashed"}
	require.NoError(t, db.Create(stranger).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boards/:id",
		setUser(stranger.ID),
		middleware.InjectBoardPermission(perms),
		func(c *gin.Context) {
			_, ok := middleware.GetBoardPermission(c)
			require.False(t, ok)
			c.JSON(http.StatusOK, gin.H{"message": "handled"})
		})

	req := httptest.NewRequest(http.MethodGet, "/boards/"+strconv.FormatUint(boardID, 10), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
