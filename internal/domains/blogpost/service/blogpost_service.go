package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"path"
	"time"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/blogpost"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const listCacheTTL = 5 * time.Minute

type blogPostService struct {
	repo       blogpost.Repository
	imageRepo  blogpost.ImageRepository
	authorRepo author.Repository
	cache      cache.Cache
	storage    blogpost.ObjectStorage
	processor  *storage.ImageProcessor
}

func NewBlogPostService(
	repo blogpost.Repository,
	imageRepo blogpost.ImageRepository,
	authorRepo author.Repository,
	c cache.Cache,
	store blogpost.ObjectStorage,
	processor *storage.ImageProcessor,
) blogpost.Service {
	return &blogPostService{
		repo:       repo,
		imageRepo:  imageRepo,
		authorRepo: authorRepo,
		cache:      c,
		storage:    store,
		processor:  processor,
	}
}

// ============================================
// LIST (cached)
// ============================================

// listCacheKey includes the viewer flag so admin and non-admin listings
// never share cache entries.
func listCacheKey(req blogpost.ListPostsRequest) string {
	data := fmt.Sprintf("q=%s|active=%v|deleted=%v|author=%v|y=%d|m=%d|sort=%s|limit=%d|offset=%d|admin=%t",
		req.Search, req.Active, req.Deleted, req.AuthorID, req.Year, req.Month,
		req.SortBy, req.Limit, req.Offset, req.ViewerIsAdmin,
	)
	return fmt.Sprintf("posts:list:%x", md5.Sum([]byte(data)))
}

type cachedList struct {
	Posts []blogpost.PostListRow `json:"posts"`
	Total int                    `json:"total"`
}

func (s *blogPostService) List(ctx context.Context, req blogpost.ListPostsRequest) ([]blogpost.PostListRow, int, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	key := listCacheKey(req)

	var cached cachedList
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("post list cache read failed")
	}
	if found {
		return cached.Posts, cached.Total, nil
	}

	posts, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	if err := s.cache.Set(ctx, key, cachedList{Posts: posts, Total: total}, listCacheTTL); err != nil {
		// Cache write failure never fails the request
		log.Warn().Err(err).Msg("post list cache write failed")
	}

	return posts, total, nil
}

func (s *blogPostService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "posts:list:*"); err != nil {
		log.Warn().Err(err).Msg("post list cache invalidation failed")
	}
}

// ============================================
// CRUD
// ============================================

func (s *blogPostService) Create(ctx context.Context, req *blogpost.CreatePostRequest) (*blogpost.PostDetailResponse, error) {
	if err := s.checkAuthors(ctx, req.AuthorIDs); err != nil {
		return nil, err
	}

	exists, err := s.repo.TitleTextExists(ctx, req.Title, req.Text, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, blogpost.ErrDuplicateTitleText
	}

	sortOrder, err := s.repo.NextSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	post := &blogpost.BlogPost{
		ID:        uuid.New(),
		Title:     req.Title,
		Text:      req.Text,
		Active:    active,
		Deleted:   false,
		Website:   req.Website,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post, req.AuthorIDs); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	log.Info().Str("post_id", post.ID.String()).Str("title", post.Title).Msg("Blog post created")

	return s.buildDetail(ctx, post)
}

func (s *blogPostService) Update(ctx context.Context, id uuid.UUID, req *blogpost.UpdatePostRequest) (*blogpost.PostDetailResponse, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Text != nil {
		post.Text = *req.Text
	}
	if req.Website != nil {
		post.Website = req.Website
	}
	if req.Active != nil {
		post.Active = *req.Active
	}

	if req.Title != nil || req.Text != nil {
		exists, err := s.repo.TitleTextExists(ctx, post.Title, post.Text, post.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, blogpost.ErrDuplicateTitleText
		}
	}

	if req.AuthorIDs != nil {
		if err := s.checkAuthors(ctx, *req.AuthorIDs); err != nil {
			return nil, err
		}
	}

	post.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, post, req.AuthorIDs); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	return s.buildDetail(ctx, post)
}

// GetByID applies the same visibility policy as the listing: non-admin
// viewers cannot fetch inactive or soft-deleted posts.
func (s *blogPostService) GetByID(ctx context.Context, id uuid.UUID, viewerIsAdmin bool) (*blogpost.PostDetailResponse, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewerIsAdmin && (!post.Active || post.Deleted) {
		return nil, blogpost.ErrPostNotFound
	}

	return s.buildDetail(ctx, post)
}

func (s *blogPostService) checkAuthors(ctx context.Context, ids []uuid.UUID) error {
	ok, err := s.authorRepo.AllExist(ctx, ids)
	if err != nil {
		return err
	}
	if !ok {
		return blogpost.ErrAuthorNotFound
	}
	return nil
}

func (s *blogPostService) buildDetail(ctx context.Context, post *blogpost.BlogPost) (*blogpost.PostDetailResponse, error) {
	authors, err := s.repo.GetAuthors(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	banner, err := s.imageRepo.GetBanner(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	resp := &blogpost.PostDetailResponse{
		ID:          post.ID,
		Title:       post.Title,
		Text:        post.Text,
		Active:      post.Active,
		Deleted:     post.Deleted,
		Website:     post.Website,
		DocumentURL: post.DocumentURL,
		SortOrder:   post.SortOrder,
		Authors:     authors,
		Images:      images,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if banner != nil {
		resp.Banner = &blogpost.BannerResponse{ID: banner.ID, ImageURL: banner.ImageURL}
	}

	return resp, nil
}

// ============================================
// INLINE TREE SAVE
// ============================================

// SaveTree filters out blank inline rows, then hands the remaining nodes to
// the repository for the atomic replace. A blank image row (no stored
// object) or a blank description never creates a record.
func (s *blogPostService) SaveTree(ctx context.Context, postID uuid.UUID, req *blogpost.SaveTreeRequest) (*blogpost.PostDetailResponse, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	nodes := make([]blogpost.ImageNode, 0, len(req.Images))
	for _, img := range req.Images {
		if img.ImageKey == "" {
			continue
		}
		descs := make([]blogpost.DescriptionNode, 0, len(img.Descriptions))
		for _, d := range img.Descriptions {
			if d.Text == "" {
				continue
			}
			descs = append(descs, d)
		}
		img.Descriptions = descs
		nodes = append(nodes, img)
	}

	if err := s.imageRepo.ReplaceTree(ctx, postID, nodes); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	log.Info().Str("post_id", postID.String()).Int("images", len(nodes)).Msg("Post image tree saved")

	return s.buildDetail(ctx, post)
}

// ============================================
// ORDERING
// ============================================

func uniqueIDs(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

func (s *blogPostService) ReorderPosts(ctx context.Context, ids []uuid.UUID) error {
	if !uniqueIDs(ids) {
		return blogpost.ErrReorderMismatch
	}

	if err := s.repo.Reorder(ctx, ids); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *blogPostService) ReorderImages(ctx context.Context, postID uuid.UUID, ids []uuid.UUID) error {
	if !uniqueIDs(ids) {
		return blogpost.ErrReorderMismatch
	}

	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return err
	}

	return s.imageRepo.ReorderImages(ctx, postID, ids)
}

// ============================================
// DELETES
// ============================================

func (s *blogPostService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetDeleted(ctx, id, true); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *blogPostService) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetDeleted(ctx, id, false); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

// HardDelete removes the row (DB cascades take images, descriptions, author
// links and the banner) and then clears the post's objects from storage.
// Storage cleanup runs after the commit; a failure there only logs, since
// the rows are already gone.
func (s *blogPostService) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)

	for _, prefix := range []string{storage.BlogImagePrefix, storage.BannerImagePrefix, storage.BlogDocumentPrefix} {
		if err := s.storage.DeleteByPrefix(ctx, fmt.Sprintf("%s/%s/", prefix, id)); err != nil {
			log.Warn().Err(err).Str("post_id", id.String()).Str("prefix", prefix).Msg("storage cleanup failed")
		}
	}

	log.Info().Str("post_id", id.String()).Msg("Blog post hard deleted")
	return nil
}

// ============================================
// UPLOADS
// ============================================

func (s *blogPostService) UploadBanner(ctx context.Context, postID uuid.UUID, data []byte) (*blogpost.BannerResponse, error) {
	if len(data) == 0 {
		return nil, blogpost.ErrEmptyFile
	}
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.processor.ValidateImage(data); err != nil {
		return nil, fmt.Errorf("%w: %s", blogpost.ErrInvalidImage, err)
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", blogpost.ErrInvalidImage, err)
	}

	bannerID := uuid.New()
	key := fmt.Sprintf("%s/%s/%s.jpg", storage.BannerImagePrefix, postID, bannerID)
	url, err := s.storage.Upload(ctx, key, variants["large"], "image/jpeg")
	if err != nil {
		return nil, err
	}

	banner := &blogpost.BannerImage{
		ID:         bannerID,
		BlogPostID: postID,
		ImageURL:   url,
		ImageKey:   key,
		CreatedAt:  time.Now(),
	}

	oldKey, err := s.imageRepo.UpsertBanner(ctx, banner)
	if err != nil {
		return nil, err
	}

	// Replaced cover: drop the stale object
	if oldKey != "" && oldKey != key {
		if err := s.storage.Delete(ctx, oldKey); err != nil {
			log.Warn().Err(err).Str("key", oldKey).Msg("failed to delete replaced banner object")
		}
	}

	return &blogpost.BannerResponse{ID: banner.ID, ImageURL: banner.ImageURL}, nil
}

func (s *blogPostService) UploadImage(ctx context.Context, postID uuid.UUID, data []byte) (*blogpost.ImageResponse, error) {
	if len(data) == 0 {
		return nil, blogpost.ErrEmptyFile
	}
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.processor.ValidateImage(data); err != nil {
		return nil, fmt.Errorf("%w: %s", blogpost.ErrInvalidImage, err)
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", blogpost.ErrInvalidImage, err)
	}

	imageID := uuid.New()
	var mainURL, mainKey string
	for name, payload := range variants {
		key := fmt.Sprintf("%s/%s/%s_%s.jpg", storage.BlogImagePrefix, postID, imageID, name)
		url, err := s.storage.Upload(ctx, key, payload, "image/jpeg")
		if err != nil {
			return nil, err
		}
		if name == "large" {
			mainURL, mainKey = url, key
		}
	}

	// Appended at the end of the post's image order
	existing, err := s.imageRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	img := &blogpost.BlogPostImage{
		ID:         imageID,
		BlogPostID: postID,
		ImageURL:   mainURL,
		ImageKey:   mainKey,
		SortOrder:  len(existing),
		CreatedAt:  time.Now(),
	}

	if err := s.imageRepo.CreateImage(ctx, img); err != nil {
		return nil, err
	}

	return &blogpost.ImageResponse{
		ID:           img.ID,
		ImageURL:     img.ImageURL,
		SortOrder:    img.SortOrder,
		Descriptions: []blogpost.DescriptionResponse{},
	}, nil
}

func (s *blogPostService) UploadDocument(ctx context.Context, postID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", blogpost.ErrEmptyFile
	}
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return "", err
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s/%s/%s", storage.BlogDocumentPrefix, postID, path.Base(filename))
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetDocument(ctx, postID, url, key); err != nil {
		return "", err
	}

	return url, nil
}

// ============================================
// EXPORT
// ============================================

// ExportToExcel builds the fixed projection workbook for the selection.
// An empty selection still yields a well-formed header-only file.
func (s *blogPostService) ExportToExcel(ctx context.Context, req blogpost.ExportPostsRequest) (*excelize.File, error) {
	rows, err := s.repo.ListForExport(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts for export: %w", err)
	}

	f, err := blogpost.ExportResource().Build(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	log.Info().Int("rows", len(rows)).Msg("Blog posts exported to excel")

	return f, nil
}
