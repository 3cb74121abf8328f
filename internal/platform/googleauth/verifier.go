package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/fx"

	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
)

const tokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

// TokenInfo is the subset of Google's tokeninfo response we use.
type TokenInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Aud     string `json:"aud"`
}

// Verifier validates Google ID tokens against the tokeninfo endpoint.
type Verifier struct {
	clientID string
	http     *http.Client
}

func New(cfg *cfgpkg.Config) *Verifier {
	return &Verifier{
		clientID: cfg.Google.ClientID,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify checks the ID token and returns its claims. The audience must match
// the configured client id when one is set.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*TokenInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokeninfoURL+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("googleauth: tokeninfo request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googleauth: invalid id token (status %d)", resp.StatusCode)
	}
	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("googleauth: decode tokeninfo: %w", err)
	}
	if info.Sub == "" || info.Email == "" {
		return nil, fmt.Errorf("googleauth: token payload incomplete")
	}
	if v.clientID != "" && info.Aud != v.clientID {
		return nil, fmt.Errorf("googleauth: audience mismatch")
	}
	return &info, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
