package services

import (
	"context"
	"errors"
	"testing"

	"dealerstock/internal/common"
	"dealerstock/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type UserServiceTestSuite struct {
	suite.Suite
	users   *MockUserRepository
	service UserServiceInterface
	ctx     context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.users = &MockUserRepository{}
	suite.service = NewUserService(suite.users)
	suite.ctx = context.Background()

	suite.users.Test(suite.T())
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.users.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func validTestUser() *models.User {
	return &models.User{
		Username:  "jdoe",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jdoe@example.com",
	}
}

func (suite *UserServiceTestSuite) TestCreateUser_DefaultsRoleToCustomer() {
	user := validTestUser()

	suite.users.On("ExistsByUsername", suite.ctx, user.Username).Return(false, nil)
	suite.users.On("ExistsByEmail", suite.ctx, user.Email).Return(false, nil)
	suite.users.On("Create", suite.ctx, user).Return(nil)
	suite.users.On("GetByID", suite.ctx, mock.AnythingOfType("uuid.UUID")).Return(user, nil)

	created, err := suite.service.CreateUser(suite.ctx, user)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleCustomer, created.Role)
}

func (suite *UserServiceTestSuite) TestCreateUser_UsernameTaken() {
	user := validTestUser()

	suite.users.On("ExistsByUsername", suite.ctx, user.Username).Return(true, nil)

	created, err := suite.service.CreateUser(suite.ctx, user)
	assert.Nil(suite.T(), created)
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
}

func (suite *UserServiceTestSuite) TestCreateUser_EmailTaken() {
	user := validTestUser()

	suite.users.On("ExistsByUsername", suite.ctx, user.Username).Return(false, nil)
	suite.users.On("ExistsByEmail", suite.ctx, user.Email).Return(true, nil)

	created, err := suite.service.CreateUser(suite.ctx, user)
	assert.Nil(suite.T(), created)
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
}

func (suite *UserServiceTestSuite) TestCreateUser_InvalidEmail() {
	user := validTestUser()
	user.Email = "not-an-email"

	created, err := suite.service.CreateUser(suite.ctx, user)
	assert.Nil(suite.T(), created)
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *UserServiceTestSuite) TestUpdateUser_KeepsPasswordWhenEmpty() {
	id := uuid.New()
	existing := validTestUser()
	existing.ID = id
	existing.Password = "hashed-secret"
	existing.Role = models.RoleCustomer

	update := validTestUser()
	update.FirstName = "Janet"

	suite.users.On("GetByID", suite.ctx, id).Return(existing, nil).Once()
	suite.users.On("Update", suite.ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == id && u.Password == "hashed-secret" && u.FirstName == "Janet"
	})).Return(nil)
	suite.users.On("GetByID", suite.ctx, id).Return(update, nil)

	_, err := suite.service.UpdateUser(suite.ctx, id, update)
	assert.NoError(suite.T(), err)
}

func (suite *UserServiceTestSuite) TestGetUsersByRole_InvalidRole() {
	users, err := suite.service.GetUsersByRole(suite.ctx, "SUPERVISOR")
	assert.Nil(suite.T(), users)
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}
