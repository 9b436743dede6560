package handler

import (
	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	"github.com/haylex-sistemas/haylex/backend/internal/review"
)

// Store es la capa de persistencia que usan los handlers.
// *repository.Repository la implementa; los tests usan versiones en memoria.
type Store interface {
	review.Store

	GetUserByID(id int64) (*domain.User, error)
	GetUserByUsername(username string) (*domain.User, error)
	CreateUser(user *domain.User) error
	UpdateUser(user *domain.User) error
	GetAllUsers() ([]*domain.User, error)
	DeleteUser(id int64) error
	CheckEmailIfExists(email string) (bool, error)
	CountAdmins() (int, error)

	CreateClient(client *domain.Client) error
	GetClientByID(id int64) (*domain.Client, error)
	GetAllClients() ([]*domain.Client, error)
	GetClientsByExecutiveID(executiveID int64) ([]*domain.Client, error)
	UpdateClient(client *domain.Client) error
	DeleteClient(id int64) error

	GetTaskRecordsByStatus(status domain.TaskStatus) ([]*domain.TaskRecord, error)
	GetTaskRecordsByExecutiveID(executiveID int64) ([]*domain.TaskRecord, error)

	CreateMessage(message *domain.Message) error
	GetMessagesByUserID(userID int64) ([]*domain.Message, error)
	MarkMessageRead(messageID int64, recipientID int64) error
	MarkAllMessagesRead(recipientID int64) error
	CountUnreadMessages(recipientID int64) (int64, error)
}
