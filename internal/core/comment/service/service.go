package commentapp

import (
	"context"
	"strings"
	"time"

	"localinfo/internal/core/apperr"
	"localinfo/internal/core/attachment"
	commentEntity "localinfo/internal/core/comment"
	"localinfo/internal/core/converter"
	"localinfo/internal/core/photo"
	postEntity "localinfo/internal/core/post"
	userEntity "localinfo/internal/core/user"
	commentPort "localinfo/internal/ports/comment"
	photoPort "localinfo/internal/ports/photo"
	postPort "localinfo/internal/ports/post"
	"localinfo/internal/ports/transaction"
	userPort "localinfo/internal/ports/user"

	"go.uber.org/zap"
)

type Repositories struct {
	Comments      commentPort.CommentRepository
	CommentPhotos photoPort.CommentPhotoRepository
	Posts         postPort.PostRepository
	Users         userPort.UserRepository
}

type CommentService struct {
	repos       Repositories
	tx          transaction.Manager
	attachments *attachment.Uploads
	logger      *zap.Logger
	now         func() time.Time
}

func NewCommentService(repos Repositories, tx transaction.Manager, attachments *attachment.Uploads, logger *zap.Logger) *CommentService {
	return &CommentService{
		repos:       repos,
		tx:          tx,
		attachments: attachments,
		logger:      logger,
		now:         time.Now,
	}
}

// Save stores a comment on postID. A reply must target a live top-level
// comment of the same post.
func (s *CommentService) Save(ctx context.Context, req commentPort.SaveRequest, postID uint) (*commentPort.CommentResponse, error) {
	if strings.TrimSpace(req.Contents) == "" {
		return nil, apperr.Validation("invalid comment", map[string]string{"contents": "must not be empty"})
	}

	batch := s.attachments.Begin()
	var res *commentPort.CommentResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		author, err := s.findUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		if _, err := s.findPost(ctx, postID); err != nil {
			return err
		}
		if req.ParentID != nil {
			if err := s.checkParent(ctx, *req.ParentID, postID); err != nil {
				return err
			}
		}

		urls, err := batch.Upload(ctx, req.Photos, photo.CommentNamespace)
		if err != nil {
			return err
		}

		c, err := s.repos.Comments.Create(ctx, converter.ToComment(req, postID))
		if err != nil {
			return err
		}
		if err := s.repos.CommentPhotos.CreateAll(ctx, converter.ToCommentPhotos(c.ID, urls)); err != nil {
			return err
		}

		c.User = *author
		res = converter.ToCommentResponse(c, urls)
		return nil
	})
	if err != nil {
		batch.Abandon(ctx, err)
		return nil, err
	}

	s.logger.Info("comment saved",
		zap.Uint("comment_id", res.ID),
		zap.Uint("post_id", postID),
		zap.Int("depth", res.Depth),
	)
	return res, nil
}

// FindAllByPostID lists the live comments of a live post in id order.
func (s *CommentService) FindAllByPostID(ctx context.Context, postID uint) ([]*commentPort.CommentResponse, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.repos.Comments.FindAllByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	res := make([]*commentPort.CommentResponse, 0, len(comments))
	for _, c := range comments {
		res = append(res, converter.ToCommentResponse(c, photo.CommentURLs(c.Photos)))
	}
	return res, nil
}

// ChangeComment overwrites the contents and appends the uploaded photos. When
// CommentPhotoID is set, that photo is retired so the upload replaces it.
func (s *CommentService) ChangeComment(ctx context.Context, req commentPort.ChangeRequest) (*commentPort.CommentResponse, error) {
	if strings.TrimSpace(req.Contents) == "" {
		return nil, apperr.Validation("invalid comment", map[string]string{"contents": "must not be empty"})
	}

	batch := s.attachments.Begin()
	var res *commentPort.CommentResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.findComment(ctx, req.CommentID)
		if err != nil {
			return err
		}
		if req.CommentPhotoID != nil {
			if err := s.retirePhoto(ctx, c.ID, *req.CommentPhotoID); err != nil {
				return err
			}
		}

		urls, err := batch.Upload(ctx, req.Photos, photo.CommentNamespace)
		if err != nil {
			return err
		}
		if err := s.repos.CommentPhotos.CreateAll(ctx, converter.ToCommentPhotos(c.ID, urls)); err != nil {
			return err
		}

		c.ChangeContents(req.Contents)
		if err := s.repos.Comments.UpdateContents(ctx, c.ID, c.Contents); err != nil {
			return err
		}

		updated, err := s.findComment(ctx, c.ID)
		if err != nil {
			return err
		}
		res = converter.ToCommentResponse(updated, photo.CommentURLs(updated.Photos))
		return nil
	})
	if err != nil {
		batch.Abandon(ctx, err)
		return nil, err
	}

	s.logger.Info("comment changed", zap.Uint("comment_id", req.CommentID), zap.Int("new_photos", len(req.Photos)))
	return res, nil
}

// DeleteComment soft-deletes the comment and its own photos. Replies are left untouched.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	at := s.now()
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.findComment(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repos.CommentPhotos.SoftDeleteByCommentIDs(ctx, []uint{c.ID}, at); err != nil {
			return err
		}
		return s.repos.Comments.SoftDelete(ctx, c.ID, at)
	})
	if err != nil {
		return err
	}
	s.logger.Info("comment deleted", zap.Uint("comment_id", id))
	return nil
}

func (s *CommentService) checkParent(ctx context.Context, parentID, postID uint) error {
	parent, found, err := s.repos.Comments.FindByID(ctx, parentID)
	if err != nil {
		return err
	}
	switch {
	case !found:
		return apperr.Validation("invalid comment", map[string]string{"parentId": "parent comment does not exist"})
	case parent.PostID != postID:
		return apperr.Validation("invalid comment", map[string]string{"parentId": "parent comment belongs to another post"})
	case parent.Depth() != commentEntity.DepthZero:
		return apperr.Validation("invalid comment", map[string]string{"parentId": "replies can only target top-level comments"})
	}
	return nil
}

func (s *CommentService) retirePhoto(ctx context.Context, commentID, photoID uint) error {
	p, found, err := s.repos.CommentPhotos.FindByID(ctx, photoID)
	if err != nil {
		return err
	}
	if !found || p.CommentID != commentID {
		return apperr.NotFound("comment photo %d not found on comment %d", photoID, commentID)
	}
	return s.repos.CommentPhotos.SoftDelete(ctx, p.ID, s.now())
}

func (s *CommentService) findComment(ctx context.Context, id uint) (*commentEntity.Comment, error) {
	c, found, err := s.repos.Comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("comment %d not found", id)
	}
	return c, nil
}

func (s *CommentService) findPost(ctx context.Context, id uint) (*postEntity.Post, error) {
	p, found, err := s.repos.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("post %d not found", id)
	}
	return p, nil
}

func (s *CommentService) findUser(ctx context.Context, id uint) (*userEntity.User, error) {
	u, found, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("user %d not found", id)
	}
	return u, nil
}
