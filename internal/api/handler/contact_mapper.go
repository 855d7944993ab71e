package handler

import "github.com/contactdesk/contact-api/internal/core/domain"

type contactOwnerResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type contactResponse struct {
	ID        string                `json:"id"`
	FirstName string                `json:"firstName"`
	LastName  string                `json:"lastName,omitempty"`
	Email     string                `json:"email,omitempty"`
	Phone     string                `json:"phone"`
	UserID    string                `json:"userId,omitempty"`
	User      *contactOwnerResponse `json:"user,omitempty"`
}

func contactToResponse(contact *domain.Contact) contactResponse {
	resp := contactResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		UserID:    contact.UserID,
	}
	if contact.Owner != nil {
		resp.User = &contactOwnerResponse{
			Username: contact.Owner.Username,
			Name:     contact.Owner.Name,
		}
	}
	return resp
}
