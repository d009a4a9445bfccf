package handler

// Request types bind from both form posts (pages) and JSON bodies (API);
// validation beyond presence lives in the auth service so the page and API
// flows cannot drift apart.

type loginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type signUpRequest struct {
	Email     string `json:"email"     form:"email"`
	Username  string `json:"username"  form:"username"`
	Password1 string `json:"password1" form:"password1"`
	Password2 string `json:"password2" form:"password2"`
}

type updateUsernameRequest struct {
	NewUsername string `json:"new_username" form:"new_username"`
}

type updatePasswordRequest struct {
	OldPassword  string `json:"old_password"  form:"old_password"`
	NewPassword  string `json:"new_password"  form:"new_password"`
	NewPassword2 string `json:"new_password2" form:"new_password2"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
