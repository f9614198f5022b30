package identity

import (
	"context"
	"testing"
	"time"

	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// makeIDToken returns a signed JWT carrying sub, email and exp.
func makeIDToken(t *testing.T, sub, email string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"exp":   exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

// fakeCognito records calls and returns canned results.
type fakeCognito struct {
	SignUpErr        error
	ConfirmErr       error
	ResendErr        error
	ForgotErr        error
	ConfirmForgotErr error
	GlobalSignOutErr error
	InitiateAuthOut  *cip.InitiateAuthOutput
	InitiateAuthErr  error
	RefreshOut       *cip.InitiateAuthOutput
	RefreshErr       error

	Calls             []string
	LastSignUp        *cip.SignUpInput
	LastConfirm       *cip.ConfirmSignUpInput
	LastInitiate      *cip.InitiateAuthInput
	LastGlobalSignOut *cip.GlobalSignOutInput
	LastConfirmForgot *cip.ConfirmForgotPasswordInput
}

func (f *fakeCognito) SignUp(_ context.Context, in *cip.SignUpInput, _ ...func(*cip.Options)) (*cip.SignUpOutput, error) {
	f.Calls = append(f.Calls, "SignUp")
	f.LastSignUp = in
	return &cip.SignUpOutput{}, f.SignUpErr
}

func (f *fakeCognito) ConfirmSignUp(_ context.Context, in *cip.ConfirmSignUpInput, _ ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error) {
	f.Calls = append(f.Calls, "ConfirmSignUp")
	f.LastConfirm = in
	return &cip.ConfirmSignUpOutput{}, f.ConfirmErr
}

func (f *fakeCognito) ResendConfirmationCode(_ context.Context, _ *cip.ResendConfirmationCodeInput, _ ...func(*cip.Options)) (*cip.ResendConfirmationCodeOutput, error) {
	f.Calls = append(f.Calls, "ResendConfirmationCode")
	return &cip.ResendConfirmationCodeOutput{}, f.ResendErr
}

func (f *fakeCognito) InitiateAuth(_ context.Context, in *cip.InitiateAuthInput, _ ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	f.LastInitiate = in
	if in.AuthFlow == types.AuthFlowTypeRefreshTokenAuth {
		f.Calls = append(f.Calls, "Refresh")
		return f.RefreshOut, f.RefreshErr
	}
	f.Calls = append(f.Calls, "InitiateAuth")
	return f.InitiateAuthOut, f.InitiateAuthErr
}

func (f *fakeCognito) GlobalSignOut(_ context.Context, in *cip.GlobalSignOutInput, _ ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error) {
	f.Calls = append(f.Calls, "GlobalSignOut")
	f.LastGlobalSignOut = in
	return &cip.GlobalSignOutOutput{}, f.GlobalSignOutErr
}

func (f *fakeCognito) ForgotPassword(_ context.Context, _ *cip.ForgotPasswordInput, _ ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error) {
	f.Calls = append(f.Calls, "ForgotPassword")
	return &cip.ForgotPasswordOutput{}, f.ForgotErr
}

func (f *fakeCognito) ConfirmForgotPassword(_ context.Context, in *cip.ConfirmForgotPasswordInput, _ ...func(*cip.Options)) (*cip.ConfirmForgotPasswordOutput, error) {
	f.Calls = append(f.Calls, "ConfirmForgotPassword")
	f.LastConfirmForgot = in
	return &cip.ConfirmForgotPasswordOutput{}, f.ConfirmForgotErr
}

func authOut(idToken, access, refresh string) *cip.InitiateAuthOutput {
	return &cip.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			IdToken:      &idToken,
			AccessToken:  &access,
			RefreshToken: &refresh,
		},
	}
}
