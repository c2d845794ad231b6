// Package handler implements the HTTP API of the tool directory.
//
// # Routes
//
// Reads are public: tools, categories, articles, resources, messages,
// styles, projects and teams. Visitors may also post guestbook messages,
// apply for maker membership with an auth code and log in.
//
// Management routes require a bearer token issued by POST /api/auth/login:
//   - admin: every mutation of tools, categories, articles, resources,
//     links and styles; message replies and deletion; auth codes; maker
//     password resets; database export and import.
//   - maker: publishing and joining projects, forming teams, editing the
//     own profile and password, redeeming further auth codes.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200, 201,
// 204). Error responses return JSON with {error, details, fields} structure:
// 400 for malformed or invalid input, 401 and 403 for authentication, 404 for
// unknown records, 409 for refused operations.
//
// # Server-Sent Events
//
// The /events endpoint streams every repository change as it happens.
package handler
