// Package directory provides the LDAP implementation of auth.Directory.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// LDAP authenticates users against a directory server. Binds use the DN
// "uid=<user>,<Organization>"; attributes are fetched with a subtree search
// under the same DN restricted by Filter, so only entries matching the
// configured filter are accepted.
//
// Connections are dialed per call. Logins are rare enough that pooling
// directory connections is not worth the reconnect handling.
type LDAP struct {
	URL          string // e.g. "ldap://directory.example.org:389"
	Organization string // base DN, e.g. "ou=people,dc=example,dc=org"
	Filter       string // e.g. "(objectClass=inetOrgPerson)"
}

const (
	attrName    = "cn"
	attrContact = "publicEMailAddress"
)

var errNoAttributes = errors.New("directory entry has no usable attributes")

// NewLDAP returns an LDAP directory client.
func NewLDAP(url, organization, filter string) *LDAP {
	return &LDAP{URL: url, Organization: organization, Filter: filter}
}

func (d *LDAP) userDN(userID string) string {
	return fmt.Sprintf("uid=%s,%s", userID, d.Organization)
}

// Bind authenticates the user with a simple bind.
func (d *LDAP) Bind(ctx context.Context, userID, password string) error {
	conn, err := ldap.DialURL(d.URL)
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.Bind(d.userDN(userID), password)
}

// FetchAttributes returns the display name and contact address of the user.
// Entries missing either attribute are rejected; the login flow maps that
// to a generic unauthorized response.
func (d *LDAP) FetchAttributes(ctx context.Context, userID string) (string, string, error) {
	conn, err := ldap.DialURL(d.URL)
	if err != nil {
		return "", "", err
	}
	defer conn.Close()

	req := ldap.NewSearchRequest(
		d.userDN(userID),
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		d.Filter,
		[]string{attrName, attrContact},
		nil,
	)
	res, err := conn.Search(req)
	if err != nil {
		return "", "", err
	}
	if len(res.Entries) == 0 {
		return "", "", errNoAttributes
	}
	entry := res.Entries[0]
	name := entry.GetAttributeValue(attrName)
	contact := entry.GetAttributeValue(attrContact)
	if name == "" || contact == "" {
		return "", "", errNoAttributes
	}
	return name, contact, nil
}
