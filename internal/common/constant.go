package common

// AuthorizationHeaderName carries the raw ID token on backend API calls.
// The backend authorizer expects the token without a "Bearer " prefix.
const AuthorizationHeaderName = "Authorization"

// JSONContentType is sent with every backend API request.
const JSONContentType = "application/json"
