package migrations

import "embed"

// FS contém os arquivos SQL aplicados pelo golang-migrate através do driver iofs
//
//go:embed *.sql
var FS embed.FS

const Version = 2
