package domain

import "time"

// AuditInfo is the created/modified bookkeeping shared by every entity.
type AuditInfo struct {
	CreatedOn  time.Time  `gorm:"not null" json:"createdOn"`
	ModifiedOn *time.Time `json:"modifiedOn,omitempty"`
}

func (a *AuditInfo) Audit() *AuditInfo { return a }

// DeletableEntity adds the soft-delete flag on top of AuditInfo.
type DeletableEntity struct {
	AuditInfo
	IsDeleted bool       `gorm:"index;not null;default:false" json:"isDeleted"`
	DeletedOn *time.Time `json:"deletedOn,omitempty"`
}

func (d *DeletableEntity) Deletion() *DeletableEntity { return d }

// MarkDeleted flips the flag; the row stays in the table.
func (d *DeletableEntity) MarkDeleted(at time.Time) {
	d.IsDeleted = true
	d.DeletedOn = &at
}

func (d *DeletableEntity) Restore() {
	d.IsDeleted = false
	d.DeletedOn = nil
}

// Auditable entities get CreatedOn/ModifiedOn stamped on save.
type Auditable interface {
	Audit() *AuditInfo
}

// Deletable entities are hidden from default queries once IsDeleted is set.
type Deletable interface {
	Auditable
	Deletion() *DeletableEntity
	TableName() string
}
