package mcpserver

// SummaryFormatContract is the canonical free-text summary format the
// close_session tool understands. Exposed both as a tool and as an MCP
// resource so callers can fetch it before composing a summary.
const SummaryFormatContract = `# Dagaz Session Summary Format

A session summary is plain Markdown. Recognized section headings (any
level) sort their bullets into the structured summary:

- "Accomplishments" (also "Done", "What was accomplished")
- "Decisions" (also "Decisions Made", "Key Decisions")
- "Blockers" (also "Blocked", "Open Issues")
- "Next Steps" (also "Follow-ups", "TODO")

Bullets under an unrecognized heading stay in the current section.
Prose before the first heading counts as accomplishments.

Decision bullets may carry indented sub-bullets with structured fields:

    - Adopted SQLite for the session log
      - Status: accepted
      - Context: need queryable history
      - Rationale: zero-ops embedded store
      - Consequences: single-writer constraint

Example:

    ## Accomplishments
    - Implemented the block chunker
    - Fixed id normalization

    ## Next Steps
    - Wire the watcher into the event stream
`
