// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package smberr

// Codes maps NT status values, HRESULT wrapped Win32 errors
// and plain Win32 error codes to a readable description.
var Codes = map[uint32]string{
	3221225525: "Access Denied - Check your permissions for this file/folder",
	3221225506: "File/Path Not Found",
	3221225514: "Invalid Parameter",
	3221225485: "Sharing Violation - File is in use by another process",
	3221225524: "Object Name Invalid",
	3221225534: "Not Enough Quota",
	3221225581: "Logon Failure - Check your username, password, and domain",
	3221226036: "Bad Network Name - The specified share does not exist on the server",
	2147942402: "Network Name Not Found - Share does not exist",
	2147942405: "Network Path Not Found",
	5:          "Access Denied",
	32:         "Sharing Violation",
	53:         "Network Path Not Found",
	67:         "Network Name Not Found",
	87:         "Invalid Parameter",
	1314:       "Network Error",
}

const (
	MsgUnknown            = "Unknown error occurred"
	MsgConnectionRefused  = "Could not connect to SMB server - Connection refused"
	MsgConnectionTimedOut = "Connection to SMB server timed out"
	MsgServerNotFound     = "SMB server not found - Check the server address"
)
