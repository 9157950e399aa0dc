// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package identifier validates and models the dash-grouped identifier
// grammar shared by object ids, geometry ids, intent ids, and tags, plus
// the related userid, Color, and session token value types. None of
// these types carry behavior beyond validation and canonical rendering;
// every other package treats them as opaque comparable values.
package identifier
