// Package handlers declares ryob's routes: registration, login and logout
// in Users, and topic and post pages in Topics.
//
// Handlers bind forms with Context.Bind, call into package forum and render
// pages from package views. Validation failures and expected domain errors
// (name taken, bad login) are rendered back into the form with 400, 409 or
// 401. Everything else is returned to ErrorHandler.
package handlers
