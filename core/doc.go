// Package core contains the launcher's canonical contracts: the response
// envelope, the failure taxonomy, the table-driven error classifier and the
// configuration layer. Provider, transport and distribution packages depend on
// core; core must not depend on them.
package core
