// Package mailpress relays marketing email campaigns into a CMS.
// It fetches a campaign's rendered HTML from the email vendor, distills
// the markup into structured content (ordered text blocks, content
// images, a call to action, embedded links), and publishes the result
// as a draft post with the images rehosted in the CMS media library.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, mailchimp/).
package mailpress
