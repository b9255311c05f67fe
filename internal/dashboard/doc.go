// Package dashboard holds the controller behind the food dashboard: it loads
// the catalog, tracks which modal is open and which food is being edited, and
// forwards form submissions to the backend.
//
// Create, update and delete return a Result instead of an error so views can
// show failures next to the form that caused them. A submit that is already
// pending returns ErrInFlight without contacting the backend.
package dashboard
