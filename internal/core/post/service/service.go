package postapp

import (
	"context"
	"strings"
	"time"

	"localinfo/internal/core/apperr"
	"localinfo/internal/core/attachment"
	categoryEntity "localinfo/internal/core/category"
	"localinfo/internal/core/converter"
	"localinfo/internal/core/photo"
	postEntity "localinfo/internal/core/post"
	userEntity "localinfo/internal/core/user"
	categoryPort "localinfo/internal/ports/category"
	commentPort "localinfo/internal/ports/comment"
	photoPort "localinfo/internal/ports/photo"
	postPort "localinfo/internal/ports/post"
	"localinfo/internal/ports/transaction"
	userPort "localinfo/internal/ports/user"

	"go.uber.org/zap"
)

// Repositories groups the persistence ports PostService works with.
type Repositories struct {
	Posts         postPort.PostRepository
	Photos        photoPort.PhotoRepository
	Comments      commentPort.CommentRepository
	CommentPhotos photoPort.CommentPhotoRepository
	Users         userPort.UserRepository
	Categories    categoryPort.CategoryRepository
}

type PostService struct {
	repos       Repositories
	tx          transaction.Manager
	attachments *attachment.Uploads
	logger      *zap.Logger
	now         func() time.Time
}

func NewPostService(repos Repositories, tx transaction.Manager, attachments *attachment.Uploads, logger *zap.Logger) *PostService {
	return &PostService{
		repos:       repos,
		tx:          tx,
		attachments: attachments,
		logger:      logger,
		now:         time.Now,
	}
}

// CreatePost resolves the author and category, uploads the photos and stores
// the post. Nothing is uploaded when a reference cannot be resolved.
func (s *PostService) CreatePost(ctx context.Context, req postPort.CreateRequest) (uint, error) {
	if strings.TrimSpace(req.Contents) == "" {
		return 0, apperr.Validation("invalid post", map[string]string{"contents": "must not be empty"})
	}

	batch := s.attachments.Begin()
	var id uint
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		author, err := s.findUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		cat, err := s.findCategory(ctx, req.CategoryID)
		if err != nil {
			return err
		}

		urls, err := batch.Upload(ctx, req.Photos, photo.PostNamespace)
		if err != nil {
			return err
		}

		created, err := s.repos.Posts.Create(ctx, postEntity.New(req.Contents, cat, author, converter.ToPhotos(urls)))
		if err != nil {
			return err
		}
		id = created.ID
		return nil
	})
	if err != nil {
		batch.Abandon(ctx, err)
		return 0, err
	}

	s.logger.Info("post created",
		zap.Uint("post_id", id),
		zap.Uint("user_id", req.UserID),
		zap.Int("photos", len(req.Photos)),
	)
	return id, nil
}

func (s *PostService) FindDetailPost(ctx context.Context, id uint) (*postPort.PostResponse, error) {
	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.ToPostResponse(p), nil
}

// FindAllByCategory lists the live posts of an existing category in id order.
func (s *PostService) FindAllByCategory(ctx context.Context, categoryID uint) ([]*postPort.PostResponse, error) {
	if _, err := s.findCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	posts, err := s.repos.Posts.FindAllByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	res := make([]*postPort.PostResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, converter.ToPostResponse(p))
	}
	return res, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id uint, req postPort.UpdateRequest) (uint, error) {
	if strings.TrimSpace(req.Contents) == "" {
		return 0, apperr.Validation("invalid post", map[string]string{"contents": "must not be empty"})
	}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.findPost(ctx, id)
		if err != nil {
			return err
		}
		return s.repos.Posts.UpdateContents(ctx, p.UpdateContents(req.Contents), req.Contents)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("post updated", zap.Uint("post_id", id))
	return id, nil
}

// DeletePost soft-deletes the post together with its photos, its comments and
// their photos, all stamped with the same instant.
func (s *PostService) DeletePost(ctx context.Context, id uint) (uint, error) {
	at := s.now()
	var comments int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.findPost(ctx, id)
		if err != nil {
			return err
		}

		commentIDs, err := s.repos.Comments.SoftDeleteByPostID(ctx, p.ID, at)
		if err != nil {
			return err
		}
		comments = len(commentIDs)
		if err := s.repos.CommentPhotos.SoftDeleteByCommentIDs(ctx, commentIDs, at); err != nil {
			return err
		}
		if err := s.repos.Photos.SoftDeleteByPostID(ctx, p.ID, at); err != nil {
			return err
		}
		return s.repos.Posts.SoftDelete(ctx, p.Delete(at), at)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("post deleted", zap.Uint("post_id", id), zap.Int("comments", comments))
	return id, nil
}

func (s *PostService) findPost(ctx context.Context, id uint) (*postEntity.Post, error) {
	p, found, err := s.repos.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("post %d not found", id)
	}
	return p, nil
}

func (s *PostService) findUser(ctx context.Context, id uint) (*userEntity.User, error) {
	u, found, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("user %d not found", id)
	}
	return u, nil
}

func (s *PostService) findCategory(ctx context.Context, id uint) (*categoryEntity.Category, error) {
	c, found, err := s.repos.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("category %d not found", id)
	}
	return c, nil
}
