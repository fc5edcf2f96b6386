package v1

import (
	ws_uuid "github.com/wedsync/backend/internal/uuid"
)

// URICouple binds the tenant segment of every scoped route.
type URICouple struct {
	CoupleID ws_uuid.UUID `uri:"coupleId" binding:"required" format:"UUID"` // ID of the couple
}

// URIID binds a resource ID below the tenant segment.
type URIID struct {
	URICouple
	ID ws_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// URICategory binds a category ID below the tenant segment.
type URICategory struct {
	URICouple
	CategoryID ws_uuid.UUID `uri:"categoryId" binding:"required" format:"UUID"` // ID of the category
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}
