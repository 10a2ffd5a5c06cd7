package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/policy"
	"marketplace-service/src/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result := f.identity.Register(ctx, &model.RegisterRequest{
		Username:      "dana",
		Email:         "dana@example.com",
		Password:      "correct-horse",
		Role:          "driver",
		LicenseNumber: "DL-001",
	})
	require.NoError(t, result.Error)
	auth := result.Data.(*model.AuthResponse)
	assert.Equal(t, "driver", auth.User.Role)
	assert.NotEmpty(t, auth.Tokens.Access)
	assert.NotEmpty(t, auth.Tokens.Refresh)

	user, err := f.store.Users().FindByID(ctx, auth.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	driver, err := f.store.Drivers().FindByUserID(ctx, auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "DL-001", driver.LicenseNumber)

	t.Run("username taken", func(t *testing.T) {
		result := f.identity.Register(ctx, &model.RegisterRequest{
			Username: "DANA", Email: "other@example.com", Password: "correct-horse", Role: "client",
		})
		requireKind(t, result, "conflict")
		clients, err := f.store.Clients().List(ctx, entity.ClientFilter{})
		require.NoError(t, err)
		assert.Empty(t, clients)
	})

	t.Run("unknown role", func(t *testing.T) {
		result := f.identity.Register(ctx, &model.RegisterRequest{
			Username: "root", Email: "root@example.com", Password: "correct-horse", Role: "admin",
		})
		requireKind(t, result, "validation_error")
	})
}

func TestRegister_ProfileFailureLeavesNoUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	broken := *f.identity
	broken.Store = failingDrivers{f.store}
	result := broken.Register(ctx, &model.RegisterRequest{
		Username: "dana", Email: "dana@example.com", Password: "correct-horse", Role: "driver",
	})
	requireKind(t, result, "internal")

	_, err := f.store.Users().FindByIdentifier(ctx, "dana")
	assert.Error(t, err)
}

func TestLoginAndRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.client(t, "carol")

	for _, identifier := range []string{"carol", "carol@example.com"} {
		result := f.identity.Login(ctx, &model.LoginRequest{Identifier: identifier, Password: "correct-horse"})
		require.NoError(t, result.Error, identifier)
	}
	requireKind(t, f.identity.Login(ctx, &model.LoginRequest{Identifier: "carol", Password: "wrong-horse"}), "unauthorized")
	requireKind(t, f.identity.Login(ctx, &model.LoginRequest{Identifier: "nobody", Password: "correct-horse"}), "unauthorized")

	login := f.identity.Login(ctx, &model.LoginRequest{Identifier: "carol", Password: "correct-horse"})
	require.NoError(t, login.Error)
	refresh := login.Data.(*model.AuthResponse).Tokens.Refresh

	rotated := f.identity.Refresh(ctx, &model.RefreshRequest{Refresh: refresh})
	require.NoError(t, rotated.Error)
	assert.NotEqual(t, refresh, rotated.Data.(model.TokensResponse).Refresh)

	requireKind(t, f.identity.Refresh(ctx, &model.RefreshRequest{Refresh: refresh}), "unauthorized")

	access := login.Data.(*model.AuthResponse).Tokens.Access
	requireKind(t, f.identity.Refresh(ctx, &model.RefreshRequest{Refresh: access}), "unauthorized")
}

func TestResolveActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.driver(t, "dana")
	client := f.client(t, "carol")

	assert.Equal(t, entity.RoleDriver, driver.Role())
	assert.NotEmpty(t, driver.DriverID)
	assert.Equal(t, entity.RoleClient, client.Role())

	_, err := f.identity.ResolveActor(ctx, &token.Claim{UserID: driver.UserID(), Role: "client"})
	assert.Error(t, err)

	_, err = f.identity.ResolveActor(ctx, &token.Claim{UserID: "missing", Role: "driver"})
	assert.Error(t, err)

	me := f.identity.CurrentUser(ctx, client)
	require.NoError(t, me.Error)
	assert.Equal(t, client.ClientID, me.Data.(*model.UserResponse).ProfileID)
}

func TestProfileVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	carol := f.client(t, "carol")
	chris := f.client(t, "chris")
	dana := f.driver(t, "dana")
	dave := f.driver(t, "dave")
	post := f.post(t, carol, "Move boxes")
	f.bid(t, dana, post.ID, 100)

	ids := func(data interface{}) []string {
		var out []string
		for _, d := range data.([]*model.DriverResponse) {
			out = append(out, d.ID)
		}
		return out
	}

	result := f.identity.ListDrivers(ctx, carol)
	require.NoError(t, result.Error)
	assert.Equal(t, []string{dana.DriverID}, ids(result.Data))

	result = f.identity.ListDrivers(ctx, chris)
	require.NoError(t, result.Error)
	assert.Empty(t, result.Data)

	result = f.identity.ListDrivers(ctx, dave)
	require.NoError(t, result.Error)
	assert.Equal(t, []string{dave.DriverID}, ids(result.Data))

	requireKind(t, f.identity.GetDriver(ctx, carol, &model.GetByIDRequest{ID: dave.DriverID}), "not_found")
	require.NoError(t, f.identity.GetDriver(ctx, carol, &model.GetByIDRequest{ID: dana.DriverID}).Error)

	require.NoError(t, f.identity.GetClient(ctx, dana, &model.GetByIDRequest{ID: carol.ClientID}).Error)
	requireKind(t, f.identity.GetClient(ctx, dave, &model.GetByIDRequest{ID: carol.ClientID}), "not_found")
	requireKind(t, f.identity.GetClient(ctx, chris, &model.GetByIDRequest{ID: carol.ClientID}), "not_found")

	result = f.identity.ListClients(ctx, dana)
	require.NoError(t, result.Error)
	assert.Len(t, result.Data, 1)

	result = f.identity.ListClients(ctx, policy.Actor(nil))
	require.NoError(t, result.Error)
	assert.Empty(t, result.Data)
}

func TestUpdateDriverAndIdentityDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dana := f.driver(t, "dana")
	dave := f.driver(t, "dave")

	requireKind(t, f.identity.UpdateDriver(ctx, dave, &model.UpdateDriverRequest{ID: dana.DriverID, LicenseNumber: ptr("X")}), "forbidden")

	result := f.identity.UpdateDriver(ctx, dana, &model.UpdateDriverRequest{ID: dana.DriverID, FrequentLocation: ptr("Jakarta")})
	require.NoError(t, result.Error)
	assert.Equal(t, "Jakarta", result.Data.(*model.DriverResponse).FrequentLocation)

	upload := &model.UploadIdentityDocumentRequest{
		DriverID: dana.DriverID,
		File:     &model.FileUpload{Name: "id.PNG", ContentType: "image/png", Size: 3, Content: bytes.NewReader([]byte("png"))},
	}
	result = f.identity.UploadIdentityDocument(ctx, dana, upload)
	require.NoError(t, result.Error)
	url := result.Data.(*model.DriverResponse).PersonalIDURL
	assert.True(t, strings.HasPrefix(url, "https://files.test/personal-ids/"+dana.DriverID+"/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	requireKind(t, f.identity.UploadIdentityDocument(ctx, dave, upload), "forbidden")
}
