package dto

// RegisterSiteRequest registers a site in the local cache
type RegisterSiteRequest struct {
	SiteID             int64  `json:"site_id" binding:"required,gt=0"`
	Name               string `json:"name"`
	URL                string `json:"url" binding:"required,url"`
	IsWPCom            bool   `json:"is_wpcom"`
	IsJetpackConnected bool   `json:"is_jetpack_connected"`
	HasWooCommerce     bool   `json:"has_woocommerce"`
}

// ListOrdersQuery filters cached orders by a comma separated status list
type ListOrdersQuery struct {
	Status string `form:"status"`
}

// FetchOrdersRequest fetches a page of orders
type FetchOrdersRequest struct {
	Status   string `json:"status"`
	LoadMore bool   `json:"load_more"`
}

// UpdateOrderStatusRequest changes the status of an order
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PageRequest pages remote fetches
type PageRequest struct {
	Page     int `json:"page" binding:"omitempty,min=1"`
	PageSize int `json:"page_size" binding:"omitempty,min=1,max=100"`
}

// FetchCustomersRequest fetches a page of customers
type FetchCustomersRequest struct {
	PageRequest
	Search string `json:"search"`
	Email  string `json:"email" binding:"omitempty,email"`
	Role   string `json:"role"`
}

// FetchPromptsRequest fetches blogging prompts starting at From (YYYY-MM-DD, default today)
type FetchPromptsRequest struct {
	Number int    `json:"number" binding:"omitempty,min=1,max=100"`
	From   string `json:"from" binding:"omitempty,datetime=2006-01-02"`
}

// ListNotificationsQuery filters cached notifications by comma separated kinds
type ListNotificationsQuery struct {
	Type    string `form:"type"`
	Subtype string `form:"subtype"`
}

// MarkSeenRequest records the newest notification timestamp the user has seen
type MarkSeenRequest struct {
	LastSeenTime int64 `json:"last_seen_time" binding:"required,gt=0"`
}
