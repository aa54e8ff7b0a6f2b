package services

import (
	"fmt"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductService is the single writer for Product, Milestone, and
// ProductDoc rows.
type ProductService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProductService(db *gorm.DB, log *zap.Logger) *ProductService {
	return &ProductService{db: db, log: log}
}

// Create makes a new product owned by the acting employee. Code is unique
// and immutable afterwards; other entities reference products by id only.
func (s *ProductService) Create(req models.CreateProductRequest, actorID uuid.UUID) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("create product: name is required: %w", ErrValidation)
	}
	if req.Code == "" {
		return nil, fmt.Errorf("create product: code is required: %w", ErrValidation)
	}

	var dup int64
	s.db.Model(&models.Product{}).Where("code = ?", req.Code).Count(&dup)
	if dup > 0 {
		return nil, fmt.Errorf("create product: code %q already in use: %w", req.Code, ErrConflict)
	}

	product := models.Product{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		OwnerID:     actorID,
		Status:      models.ProductActive,
		Category:    req.Category,
		RepoURL:     req.RepoURL,
		DocsURL:     req.DocsURL,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.GetByIDWithDetails(product.ID)
}

// Update applies the whitelisted fields. Code is not on the whitelist.
func (s *ProductService) Update(id uuid.UUID, req models.UpdateProductRequest, actorID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, ErrNotFound)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("update product %s: name cannot be empty: %w", id, ErrValidation)
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.OwnerID != nil {
		product.OwnerID = *req.OwnerID
	}
	if req.Status != nil {
		if !models.ValidProductStatus(*req.Status) {
			return nil, fmt.Errorf("update product %s: invalid status %q: %w", id, *req.Status, ErrValidation)
		}
		product.Status = *req.Status
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.DisplayOrder != nil {
		product.DisplayOrder = *req.DisplayOrder
	}
	if req.RepoURL != nil {
		product.RepoURL = req.RepoURL
	}
	if req.DocsURL != nil {
		product.DocsURL = req.DocsURL
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return s.GetByIDWithDetails(id)
}

// Delete soft-deletes the product.
func (s *ProductService) Delete(id, actorID uuid.UUID) error {
	result := s.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete product %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete product %s: %w", id, ErrNotFound)
	}

	s.log.Info("product deleted",
		zap.String("productId", id.String()),
		zap.String("actorId", actorID.String()))
	return nil
}

// GetByIDWithDetails resolves the owner plus ordered milestones and docs.
func (s *ProductService) GetByIDWithDetails(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.
		Preload("Owner").
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Docs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// List returns products matching the filter in display order.
func (s *ProductService) List(filter models.ProductFilter) ([]models.Product, error) {
	query := s.db.Preload("Owner").Order("display_order ASC, created_at ASC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", like, like)
	}

	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}
	query = query.Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// AddMilestone appends a milestone at the end of the product's order.
func (s *ProductService) AddMilestone(productID uuid.UUID, req models.CreateMilestoneRequest, actorID uuid.UUID) (*models.Milestone, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("add milestone: name is required: %w", ErrValidation)
	}

	var exists int64
	s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("add milestone to %s: %w", productID, ErrNotFound)
	}

	var maxPos int
	s.db.Model(&models.Milestone{}).
		Where("product_id = ?", productID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPos)

	milestone := models.Milestone{
		ProductID:  productID,
		Name:       req.Name,
		TargetDate: req.TargetDate,
		Status:     models.MilestonePending,
		Position:   maxPos + 1,
	}

	if err := s.db.Create(&milestone).Error; err != nil {
		return nil, fmt.Errorf("add milestone to %s: %w", productID, err)
	}
	return &milestone, nil
}

// UpdateMilestone applies partial changes including achievement notes.
func (s *ProductService) UpdateMilestone(productID, milestoneID uuid.UUID, req models.UpdateMilestoneRequest, actorID uuid.UUID) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := s.db.First(&milestone, "id = ? AND product_id = ?", milestoneID, productID).Error; err != nil {
		return nil, fmt.Errorf("update milestone %s: %w", milestoneID, ErrNotFound)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("update milestone %s: name cannot be empty: %w", milestoneID, ErrValidation)
		}
		milestone.Name = *req.Name
	}
	if req.TargetDate != nil {
		milestone.TargetDate = req.TargetDate
	}
	if req.Status != nil {
		if !models.ValidMilestoneStatus(*req.Status) {
			return nil, fmt.Errorf("update milestone %s: invalid status %q: %w", milestoneID, *req.Status, ErrValidation)
		}
		milestone.Status = *req.Status
	}
	if req.Notes != nil {
		milestone.Notes = *req.Notes
	}

	if err := s.db.Save(&milestone).Error; err != nil {
		return nil, fmt.Errorf("update milestone %s: %w", milestoneID, err)
	}
	return &milestone, nil
}

// RemoveMilestone soft-deletes a milestone.
func (s *ProductService) RemoveMilestone(productID, milestoneID, actorID uuid.UUID) error {
	result := s.db.Where("product_id = ?", productID).Delete(&models.Milestone{}, "id = ?", milestoneID)
	if result.Error != nil {
		return fmt.Errorf("remove milestone %s: %w", milestoneID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("remove milestone %s: %w", milestoneID, ErrNotFound)
	}
	return nil
}

// AddDoc appends a documentation reference. The URL is stored opaque.
func (s *ProductService) AddDoc(productID uuid.UUID, req models.CreateProductDocRequest, actorID uuid.UUID) (*models.ProductDoc, error) {
	if req.Title == "" || req.URL == "" {
		return nil, fmt.Errorf("add doc: title and url are required: %w", ErrValidation)
	}

	var exists int64
	s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("add doc to %s: %w", productID, ErrNotFound)
	}

	var maxPos int
	s.db.Model(&models.ProductDoc{}).
		Where("product_id = ?", productID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPos)

	doc := models.ProductDoc{
		ProductID: productID,
		Title:     req.Title,
		URL:       req.URL,
		Position:  maxPos + 1,
	}

	if err := s.db.Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("add doc to %s: %w", productID, err)
	}
	return &doc, nil
}

// RemoveDoc soft-deletes a documentation reference.
func (s *ProductService) RemoveDoc(productID, docID, actorID uuid.UUID) error {
	result := s.db.Where("product_id = ?", productID).Delete(&models.ProductDoc{}, "id = ?", docID)
	if result.Error != nil {
		return fmt.Errorf("remove doc %s: %w", docID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("remove doc %s: %w", docID, ErrNotFound)
	}
	return nil
}
