package mcpserver

// NamingContract describes which files the relocator treats as daily files.
const NamingContract = `# Daily File Naming Contract

A file in the working directory is a daily file when its name

1. starts with one of these prefixes (case-sensitive):
   - ` + "`real-news-tracker-`" + `
   - ` + "`tracker-data-`" + `
   - ` + "`test-data-`" + `
   - ` + "`test-news-tracker-`" + `
2. and ends with ` + "`.json`" + `.

Nothing else is inspected: directories and symlinks with a matching name
are treated the same as regular files.

## Where files go

Daily files are moved, name unchanged, into the ` + "`data/`" + ` folder directly
under the working directory. The folder is created when missing. Only the
top level of the working directory is scanned.

## Outcomes

Each file is moved with a single rename attempt. A failed move (name
collision with a directory, permission error, cross-device rename) is
reported for that file and the run continues. The run summary always
satisfies moved + failed = candidates.

## Examples

| Name | Daily file? |
|---|---|
| ` + "`tracker-data-2024-01-01.json`" + ` | yes |
| ` + "`real-news-tracker-2024-01-01.json`" + ` | yes |
| ` + "`master-tracker-log.json`" + ` | no |
| ` + "`tracker-data-5.json.bak`" + ` | no |
| ` + "`Tracker-data-5.json`" + ` | no |
`
