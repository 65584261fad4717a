// Package commands implements the storefront command line.
//
//	storefront login                      interactive sign-in and sign-up screen
//	storefront validate email VALUE       check an email address
//	storefront validate name VALUE        check a display name
//	storefront validate password VALUE    list unmet password requirements
//	storefront validate mobile VALUE      check and format a mobile number
//
// Settings come from STOREFRONT_* environment variables and optional .env files.
package commands
