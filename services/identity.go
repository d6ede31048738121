package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amartinp/contenido-backend/config"
)

// Identidad devuelta por el servicio externo de usuarios.
// user_type: "user" | "artist"
type Identity struct {
	UserType string       `json:"user_type"`
	UserData IdentityData `json:"user_data"`
}

type IdentityData struct {
	Email  string `json:"email"`
	Nombre string `json:"nombre,omitempty"`
}

func (i *Identity) Email() string { return i.UserData.Email }

func (i *Identity) IsArtist() bool { return i.UserType == "artist" }

var (
	// Token ausente, inválido o caducado
	ErrNoAutorizado = errors.New("token inválido")
	// El servicio de usuarios no respondió: NO equivale a "no autenticado"
	ErrServicioNoDisponible = errors.New("servicio de usuarios no disponible")
)

var identityClient = &http.Client{Timeout: 5 * time.Second}

// VerifyIdentity valida un token Bearer contra el servicio de usuarios y
// devuelve la identidad asociada.
func VerifyIdentity(token string) (*Identity, error) {
	url := fmt.Sprintf("%s/auth/me", config.UsersBaseURL())

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := identityClient.Do(req)
	if err != nil {
		return nil, ErrServicioNoDisponible
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, ErrNoAutorizado
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %v", err)
	}

	if identity.UserData.Email == "" {
		return nil, ErrNoAutorizado
	}

	return &identity, nil
}
