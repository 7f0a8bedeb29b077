// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// wellKnown maps principal aliases accepted in configuration to their
// well-known SID types.
var wellKnown = map[string]windows.WELL_KNOWN_SID_TYPE{
	"networkservice": windows.WinNetworkServiceSid,
	"localservice":   windows.WinLocalServiceSid,
	"localsystem":    windows.WinLocalSystemSid,
}

// NewBuilder returns a builder producing DACL-bearing descriptors.
func NewBuilder() Builder { return daclBuilder{} }

type daclBuilder struct{}

// Build grants GENERIC_ALL to principal. principal is a well-known
// alias ("NetworkService"), a string SID ("S-1-5-20"), or an account
// name resolved with LookupAccountName.
func (daclBuilder) Build(principal string) (Descriptor, error) {
	if principal == "" {
		principal = DefaultPrincipal
	}
	sid, err := resolvePrincipal(principal)
	if err != nil {
		return nil, fmt.Errorf("resolving principal %q: %w", principal, err)
	}

	access := []windows.EXPLICIT_ACCESS{{
		AccessPermissions: windows.GENERIC_ALL,
		AccessMode:        windows.GRANT_ACCESS,
		Inheritance:       windows.NO_INHERITANCE,
		Trustee: windows.TRUSTEE{
			TrusteeForm:  windows.TRUSTEE_IS_SID,
			TrusteeType:  windows.TRUSTEE_IS_UNKNOWN,
			TrusteeValue: windows.TrusteeValueFromSID(sid),
		},
	}}
	dacl, err := windows.ACLFromEntries(access, nil)
	if err != nil {
		return nil, fmt.Errorf("building DACL for %q: %w", principal, err)
	}

	securityDescriptor, err := windows.NewSecurityDescriptor()
	if err != nil {
		return nil, fmt.Errorf("allocating security descriptor: %w", err)
	}
	if err := securityDescriptor.SetDACL(dacl, true, false); err != nil {
		return nil, fmt.Errorf("attaching DACL: %w", err)
	}

	attributes := &windows.SecurityAttributes{SecurityDescriptor: securityDescriptor}
	attributes.Length = uint32(unsafe.Sizeof(*attributes))

	return &daclDescriptor{
		principal:  principal,
		dacl:       dacl,
		attributes: attributes,
	}, nil
}

func resolvePrincipal(principal string) (*windows.SID, error) {
	if sidType, ok := wellKnown[strings.ToLower(principal)]; ok {
		return windows.CreateWellKnownSid(sidType)
	}
	if strings.HasPrefix(principal, "S-") {
		return windows.StringToSid(principal)
	}
	sid, _, _, err := windows.LookupSID("", principal)
	return sid, err
}

type daclDescriptor struct {
	principal  string
	dacl       *windows.ACL
	attributes *windows.SecurityAttributes
}

func (d *daclDescriptor) Principal() string { return d.principal }

func (d *daclDescriptor) Release() {
	d.attributes = nil
	d.dacl = nil
}

// Attributes returns the SECURITY_ATTRIBUTES to pass for the process
// and thread objects, or nil for a no-op or released descriptor.
func Attributes(descriptor Descriptor) *windows.SecurityAttributes {
	dacl, ok := descriptor.(*daclDescriptor)
	if !ok || dacl == nil {
		return nil
	}
	return dacl.attributes
}
