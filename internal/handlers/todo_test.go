package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todoboard/internal/constants"
	"todoboard/internal/dto"
	"todoboard/internal/middleware"
	"todoboard/internal/models"
	"todoboard/internal/repository"
	"todoboard/internal/services"
)

// TodoHandlerTestSuite exercises the todo routes through the full middleware
// chain, so the permission gate is part of what is under test.
type TodoHandlerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	permRepo repository.PermissionRepository

	owner  *models.User
	editor *models.User
	viewer *models.User
	board  *models.Board

	// authenticatedAs controls which user the simulated auth middleware
	// resolves; zero means unauthenticated.
	authenticatedAs uint64

	router *gin.Engine
}

func (suite *TodoHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardPermission{},
		&models.Todo{},
	)
	suite.Require().NoError(err)

	boardRepo := repository.NewBoardRepository(suite.db)
	todoRepo := repository.NewTodoRepository(suite.db)
	suite.permRepo = repository.NewPermissionRepository(suite.db)

	todoService := services.NewTodoService(todoRepo, boardRepo)
	todoHandler := NewTodoHandler(todoService)

	suite.owner = suite.createUser("owner")
	suite.editor = suite.createUser("editor")
	suite.viewer = suite.createUser("viewer")

	suite.board = &models.Board{Name: "Chores", OwnerID: suite.owner.ID}
	suite.Require().NoError(boardRepo.CreateWithOwner(suite.board))
	suite.grant(suite.editor.ID, models.PermissionEditor)
	suite.grant(suite.viewer.ID, models.PermissionViewer)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.router.Use(func(c *gin.Context) {
		if suite.authenticatedAs != 0 {
			c.Set(constants.ContextKeyUserID, suite.authenticatedAs)
		}
		c.Next()
	})

	viewerGate := middleware.RequireBoardPermission(suite.permRepo, models.PermissionViewer)
	editorGate := middleware.RequireBoardPermission(suite.permRepo, models.PermissionEditor)

	boards := suite.router.Group("/api/boards")
	boards.GET("/:id/todos", viewerGate, todoHandler.ListTodos)
	boards.POST("/:id/todos", editorGate, todoHandler.CreateTodo)
	boards.GET("/:id/todos/:todo_id", viewerGate, todoHandler.GetTodo)
	boards.PUT("/:id/todos/:todo_id", editorGate, todoHandler.UpdateTodo)
	boards.DELETE("/:id/todos/:todo_id", editorGate, todoHandler.DeleteTodo)
}

func (suite *TodoHandlerTestSuite) createUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TodoHandlerTestSuite) grant(userID uint64, level models.PermissionLevel) {
	suite.Require().NoError(suite.permRepo.Create(&models.BoardPermission{
		BoardID:   suite.board.ID,
		UserID:    userID,
		Level:     level,
		GrantedAt: time.Now(),
	}))
}

func (suite *TodoHandlerTestSuite) request(method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TodoHandlerTestSuite) todosPath() string {
	return fmt.Sprintf("/api/boards/%d/todos", suite.board.ID)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_AsEditor() {
	suite.authenticatedAs = suite.editor.ID

	w := suite.request(http.MethodPost, suite.todosPath(), map[string]string{"text": "buy milk"})

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.TodoDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("buy milk", response.Text)
	suite.False(response.Completed)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_AsViewerForbidden() {
	suite.authenticatedAs = suite.viewer.ID

	w := suite.request(http.MethodPost, suite.todosPath(), map[string]string{"text": "buy milk"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "INSUFFICIENT_PERMISSIONS")

	// Nothing was written
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Todo{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *TodoHandlerTestSuite) TestListTodos_Unauthenticated() {
	suite.authenticatedAs = 0

	w := suite.request(http.MethodGet, suite.todosPath(), nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TodoHandlerTestSuite) TestListTodos_Paginated() {
	suite.authenticatedAs = suite.editor.ID

	for i := 0; i < 3; i++ {
		w := suite.request(http.MethodPost, suite.todosPath(), map[string]string{
			"text": fmt.Sprintf("todo %d", i),
		})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	suite.authenticatedAs = suite.viewer.ID
	w := suite.request(http.MethodGet, suite.todosPath()+"?page=1&limit=2", nil)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.TodoListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Todos, 2)
	suite.Equal(int64(3), response.TotalCount)
	suite.Equal(2, response.PageSize)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_Complete() {
	suite.authenticatedAs = suite.editor.ID

	w := suite.request(http.MethodPost, suite.todosPath(), map[string]string{"text": "buy milk"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.TodoDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = suite.request(http.MethodPut,
		fmt.Sprintf("%s/%d", suite.todosPath(), created.ID),
		map[string]any{"completed": true})

	suite.Equal(http.StatusOK, w.Code)

	var updated dto.TodoDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	suite.True(updated.Completed)
	suite.Equal("buy milk", updated.Text)
}

func (suite *TodoHandlerTestSuite) TestDeleteTodo() {
	suite.authenticatedAs = suite.editor.ID

	w := suite.request(http.MethodPost, suite.todosPath(), map[string]string{"text": "buy milk"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.TodoDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = suite.request(http.MethodDelete, fmt.Sprintf("%s/%d", suite.todosPath(), created.ID), nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("%s/%d", suite.todosPath(), created.ID), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TodoHandlerTestSuite) TestGetTodo_WrongBoardNotFound() {
	suite.authenticatedAs = suite.editor.ID

	w := suite.request(http.MethodPost, suite.todosPath(), map[string]string{"text": "buy milk"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.TodoDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	// A second board owned by the editor; the todo does not belong to it
	other := &models.Board{Name: "Other", OwnerID: suite.editor.ID}
	suite.Require().NoError(repository.NewBoardRepository(suite.db).CreateWithOwner(other))

	w = suite.request(http.MethodGet,
		fmt.Sprintf("/api/boards/%d/todos/%d", other.ID, created.ID), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestTodoHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TodoHandlerTestSuite))
}
