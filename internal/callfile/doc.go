// Package callfile models Asterisk call files: the directive sections
// that describe who to call and what to do once the call is answered,
// and the record that composes them into spool-ready text.
package callfile
