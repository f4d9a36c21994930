package service

import (
	"Drawer/internal/model"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Command: закрытый набор команд слоя управления.
type Command interface {
	Name() string
	command()
}

type AddTag struct{ Name string }

type GetAllTag struct{}

type GetClipboardByTag struct{ TagID int64 }

type StoreClipboardToTag struct {
	Entry model.ClipboardEntry
	TagID int64
}

type DeleteTag struct{ TagID int64 }

type DeleteTagClipboard struct{ AssociationID int64 }

// RestoreClipboard возвращает историческую запись в системный буфер обмена.
type RestoreClipboard struct{ Entry model.ClipboardEntry }

func (AddTag) Name() string              { return "add-tag" }
func (GetAllTag) Name() string           { return "get-all-tag" }
func (GetClipboardByTag) Name() string   { return "get-clipboard-by-tag" }
func (StoreClipboardToTag) Name() string { return "store-clipboard-to-tag" }
func (DeleteTag) Name() string           { return "del-tag" }
func (DeleteTagClipboard) Name() string  { return "del-clipboard-tag" }
func (RestoreClipboard) Name() string    { return "restore-clipboard" }

func (AddTag) command()              {}
func (GetAllTag) command()           {}
func (GetClipboardByTag) command()   {}
func (StoreClipboardToTag) command() {}
func (DeleteTag) command()           {}
func (DeleteTagClipboard) command()  {}
func (RestoreClipboard) command()    {}

// Response: типизированный ответ на команду.
type Response interface{ response() }

type TagResponse struct{ Tag model.Tag }

type TagsResponse struct{ Tags []model.Tag }

type SnapshotsResponse struct{ Items []model.TagClipboard }

type PinResponse struct{ Item model.TagClipboard }

// Ack: подтверждение команды без полезной нагрузки.
type Ack struct{}

func (TagResponse) response()       {}
func (TagsResponse) response()      {}
func (SnapshotsResponse) response() {}
func (PinResponse) response()       {}
func (Ack) response()               {}

// Restorer записывает запись обратно в буфер обмена, не порождая повторного захвата.
type Restorer interface {
	Restore(ctx context.Context, entry model.ClipboardEntry) error
}

// Commands: диспетчер команд.
type Commands struct {
	tags     *TagIndex
	restorer Restorer
	logger   *zap.SugaredLogger
}

// NewCommands создаёт диспетчер. restorer может быть nil, тогда RestoreClipboard недоступна.
func NewCommands(tags *TagIndex, restorer Restorer, logger *zap.SugaredLogger) *Commands {
	return &Commands{tags: tags, restorer: restorer, logger: logger}
}

// Dispatch выполняет команду и возвращает ответ соответствующего ей типа.
func (c *Commands) Dispatch(ctx context.Context, cmd Command) (Response, error) {
	resp, err := c.dispatch(ctx, cmd)
	if err != nil {
		c.logger.Debugw("command failed", "command", cmd.Name(), "error", err)
		return nil, err
	}
	return resp, nil
}

func (c *Commands) dispatch(ctx context.Context, cmd Command) (Response, error) {
	switch cmd := cmd.(type) {
	case AddTag:
		tag, err := c.tags.AddTag(ctx, cmd.Name)
		if err != nil {
			return nil, err
		}
		return TagResponse{Tag: tag}, nil
	case GetAllTag:
		tags, err := c.tags.GetAllTag(ctx)
		if err != nil {
			return nil, err
		}
		return TagsResponse{Tags: tags}, nil
	case GetClipboardByTag:
		items, err := c.tags.ListByTag(ctx, cmd.TagID)
		if err != nil {
			return nil, err
		}
		return SnapshotsResponse{Items: items}, nil
	case StoreClipboardToTag:
		item, err := c.tags.Pin(ctx, cmd.Entry, cmd.TagID)
		if err != nil {
			return nil, err
		}
		return PinResponse{Item: item}, nil
	case DeleteTag:
		if err := c.tags.DeleteTag(ctx, cmd.TagID); err != nil {
			return nil, err
		}
		return Ack{}, nil
	case DeleteTagClipboard:
		if err := c.tags.DeleteTagClipboard(ctx, cmd.AssociationID); err != nil {
			return nil, err
		}
		return Ack{}, nil
	case RestoreClipboard:
		if c.restorer == nil {
			return nil, fmt.Errorf("%w: clipboard writer is not configured", model.ErrUnsupportedFormat)
		}
		if err := c.restorer.Restore(ctx, cmd.Entry); err != nil {
			return nil, err
		}
		return Ack{}, nil
	default:
		return nil, fmt.Errorf("unknown command %T", cmd)
	}
}
