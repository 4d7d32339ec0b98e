package resource

import "travel-agency/constants"

// ModuleResponse is one entry of the admin navigation.
type ModuleResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Route        string `json:"route"`
	Permission   string `json:"permission"`
	IsActive     bool   `json:"is_active"`
	Serializable int    `json:"serializable"`
}

// AdminModules lists the back office sections in display order. Permission
// is the capability needed to open the section.
var AdminModules = []ModuleResponse{
	{ID: 1, Name: "Dashboard", Route: "/admin", Permission: constants.CapView, IsActive: true, Serializable: 1},
	{ID: 2, Name: "Tours", Route: "/admin/tours", Permission: constants.CapView, IsActive: true, Serializable: 2},
	{ID: 3, Name: "AI Tour Generator", Route: "/admin/ai-tour-generator", Permission: constants.CapGenerate, IsActive: true, Serializable: 3},
	{ID: 4, Name: "Blog", Route: "/admin/blog", Permission: constants.CapView, IsActive: true, Serializable: 4},
	{ID: 5, Name: "AI Blog Generator", Route: "/admin/ai-blog-generator", Permission: constants.CapGenerate, IsActive: true, Serializable: 5},
	{ID: 6, Name: "Inquiries", Route: "/admin/inquiries", Permission: constants.CapView, IsActive: true, Serializable: 6},
	{ID: 7, Name: "Testimonials", Route: "/admin/testimonials", Permission: constants.CapView, IsActive: true, Serializable: 7},
	{ID: 8, Name: "Team", Route: "/admin/team", Permission: constants.CapManageTeam, IsActive: true, Serializable: 8},
}
