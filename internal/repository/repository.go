package repository

import (
	"context"

	"github.com/mete1923/sentiment-chat/internal/model"
)

// ListOptions controls LIMIT/OFFSET pagination for message listings.
type ListOptions struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByHandle(ctx context.Context, handle string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type RoomRepository interface {
	CreateRoom(ctx context.Context, room *model.Room) error
	GetRoomByID(ctx context.Context, id int64) (*model.Room, error)
	GetRoomByName(ctx context.Context, name string) (*model.Room, error)
	RoomExists(ctx context.Context, id int64) (bool, error)
	ListRooms(ctx context.Context) ([]model.Room, error)
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	GetMessageByID(ctx context.Context, id int64) (*model.Message, error)
	ListMessagesByRoom(ctx context.Context, roomID int64, opts ListOptions) ([]model.Message, error)
	CountMessagesByRoom(ctx context.Context, roomID int64) (int, error)
}
