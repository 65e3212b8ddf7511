package domain

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// DemoUser is the account every sign-in resolves to. Identity providers are
// not consulted for who the user is.
var DemoUser = User{
	ID:      "1",
	Name:    "John Doe",
	Email:   "john.doe@example.com",
	Picture: "https://i.pravatar.cc/150?img=1",
}
