package api

// linkPageHTML is the single page the setup server presents. The script loads
// Plaid's Link widget, fetches a link token, and posts the public token plus
// institution metadata back on success.
const linkPageHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Plaid Link Setup</title>
  <style>
    body { font-family: sans-serif; max-width: 600px; margin: 60px auto; padding: 0 20px; }
    button { padding: 12px 24px; font-size: 16px; cursor: pointer; background: #2563eb; color: white; border: none; border-radius: 6px; }
    button:hover { background: #1d4ed8; }
    #status { margin-top: 20px; padding: 12px; background: #f0fdf4; border: 1px solid #86efac; border-radius: 6px; display: none; }
  </style>
</head>
<body>
  <h1>Plaid Account Link</h1>
  <p>Click the button below to link a bank or investment account (e.g. Vanguard, Chase, etc.).</p>
  <p>After completing the Plaid Link flow, the access token will be printed in this terminal.</p>
  <button id="link-btn">Link Account</button>
  <div id="status"></div>

  <script src="https://cdn.plaid.com/link/v2/stable/link-initialize.js"></script>
  <script>
    document.getElementById('link-btn').addEventListener('click', async () => {
      const resp = await fetch('/create_link_token', { method: 'POST' });
      const data = await resp.json();
      if (data.error) { alert('Error: ' + data.error); return; }

      const handler = Plaid.create({
        token: data.link_token,
        onSuccess: async (public_token, metadata) => {
          const exResp = await fetch('/exchange_token', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({ public_token, institution: metadata.institution })
          });
          const exData = await exResp.json();
          if (exData.error) { alert('Exchange error: ' + exData.error); return; }
          const status = document.getElementById('status');
          status.style.display = 'block';
          status.innerHTML = '<strong>Success!</strong> Check the terminal for the access token to add to your .env file.';
        },
        onExit: (err) => {
          if (err) console.error('Plaid Link error:', err);
        }
      });
      handler.open();
    });
  </script>
</body>
</html>
`
