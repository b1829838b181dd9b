// Package modules holds the feature modules of the join form service.
//
// join serves the form and its confirmation page; announcer turns account
// events into audit log lines and metrics. server.AppModules lists them in
// boot order.
package modules
