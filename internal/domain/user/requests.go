package user

// Role fields are plain strings here so an unknown value reaches ParseRole
// and surfaces as a constraint violation rather than a binding error.

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,max=254"`
	Password    string `json:"password" binding:"required,max=72"`
	Role        string `json:"role" binding:"required"`
	Designation string `json:"designation" binding:"omitempty,max=120"`
	Company     string `json:"company" binding:"omitempty,max=120"`
	FirstName   string `json:"first_name" binding:"required,max=80"`
	LastName    string `json:"last_name" binding:"required,max=80"`
}

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// UpdateRequest uses pointers so an omitted field is distinguishable from an
// empty one.
type UpdateRequest struct {
	Email       *string `json:"email" binding:"omitempty,max=254"`
	Password    *string `json:"password" binding:"omitempty,max=72"`
	Role        *string `json:"role"`
	Designation *string `json:"designation" binding:"omitempty,max=120"`
	Company     *string `json:"company" binding:"omitempty,max=120"`
	FirstName   *string `json:"first_name" binding:"omitempty,max=80"`
	LastName    *string `json:"last_name" binding:"omitempty,max=80"`
}

type AdminUpdateRoleRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

type AdminDeleteRequest struct {
	Email string `json:"email" binding:"required"`
}
