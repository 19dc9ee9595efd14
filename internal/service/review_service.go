package service

import (
	"github.com/ezelectronics/ezelectronics/internal/constants"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/repository"
)

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// AddReview 新增评价（每个用户对同一型号仅一条）
func (s *ReviewService) AddReview(username, model string, score int, comment string) error {
	if score < constants.ReviewScoreMin || score > constants.ReviewScoreMax {
		return ErrInvalidReviewScore
	}
	if err := s.requireProduct(model); err != nil {
		return err
	}

	existing, err := s.reviewRepo.GetByModelAndUser(model, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrReviewAlreadyExists
	}

	review := &models.Review{
		Model:    model,
		Username: username,
		Score:    score,
		Date:     models.Today(),
		Comment:  comment,
	}
	return s.reviewRepo.Create(review)
}

// GetReviews 某型号的全部评价
func (s *ReviewService) GetReviews(model string) ([]models.Review, error) {
	if err := s.requireProduct(model); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByModel(model)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// DeleteReview 删除当前用户对某型号的评价
func (s *ReviewService) DeleteReview(username, model string) error {
	if err := s.requireProduct(model); err != nil {
		return err
	}
	affected, err := s.reviewRepo.DeleteByModelAndUser(model, username)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// DeleteReviewsOfProduct 删除某型号的全部评价（管理端）
func (s *ReviewService) DeleteReviewsOfProduct(model string) error {
	if err := s.requireProduct(model); err != nil {
		return err
	}
	return s.reviewRepo.DeleteAllByModel(model)
}

// DeleteAllReviews 清空评价（管理端）
func (s *ReviewService) DeleteAllReviews() error {
	return s.reviewRepo.DeleteAll()
}

func (s *ReviewService) requireProduct(model string) error {
	product, err := s.productRepo.GetByModel(model)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return nil
}
