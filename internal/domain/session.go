package domain

// User - профиль текущего пользователя
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"nombre"`
	Language string `json:"idioma_por_defecto,omitempty"`
}

// Session - токен и закешированный профиль. Отсутствие сессии - анонимный режим.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthResponse - ответ /auth/login, /auth/register, /auth/google
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"nombre"`
	Language string `json:"idioma_por_defecto,omitempty"`
}

// GoogleAuth - данные федеративного входа, полученные на устройстве
type GoogleAuth struct {
	IDToken     string `json:"id_token,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

type ProfileUpdate struct {
	Name     string `json:"nombre,omitempty"`
	Language string `json:"idioma_por_defecto,omitempty"`
	Password string `json:"password,omitempty"`
}
